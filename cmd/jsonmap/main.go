package main

import (
	"encoding/base64"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/jsonmap"
	"github.com/reoring/jsonmap/config"
	jmlogrus "github.com/reoring/jsonmap/log/logrus"
	jmslog "github.com/reoring/jsonmap/log/slog"
	jmzap "github.com/reoring/jsonmap/log/zap"
)

// CLI defines the command-line interface
type CLI struct {
	Config        string   `help:"Path to a jsonmap YAML config. Defaults to the nearest .jsonmap.yml." short:"c" type:"path"`
	Date          string   `help:"Date strategy: iso8601, seconds_since_1970 or milliseconds_since_1970."`
	Keys          string   `help:"Key strategy: default or snake_case."`
	Missing       string   `help:"Missing-value strategy: throw or use_defaults."`
	Driver        string   `help:"JSON tokenizer: go-json or encoding/json."`
	DuplicateKeys string   `help:"Duplicate key handling: ignore, warn or error." name:"duplicate-keys"`
	Comments      bool     `help:"Accept comments and trailing commas."`
	Debug         bool     `help:"Enable debug logging." short:"d"`
	Logger        string   `help:"Logger used in debug mode." enum:"zap,logrus,slog" default:"zap"`
	File          string   `arg:"" help:"JSON file to read, or - for stdin."`
	Fields        []string `arg:"" help:"Fields to print as keypath[:type]. Types: raw, string, int, uint, float, bool, time, bytes, url, strings." optional:""`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("jsonmap"),
		kong.Description("Print typed values from a JSON document by keypath"),
		kong.UsageOnError(),
	)

	if err := run(&cli, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "jsonmap: %v\n", err)
		os.Exit(1)
	}
}

// run decodes cli.File and writes one "keypath<TAB>value" line per field.
// Without fields the whole document is printed.
func run(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(nil)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Dev.Debug {
		logger, closeLog, err := newLogger(cli.Logger, stderr)
		if err != nil {
			return err
		}
		defer closeLog()
		opts = append(opts, jsonmap.WithLogger(logger))
	}
	a := jsonmap.New(opts...)

	var root jsonmap.Value
	if cli.File == "-" {
		root, err = jsonmap.DecodeReader(a, stdin, jsonmap.Raw)
	} else {
		root, err = jsonmap.DecodeFile(a, cli.File, jsonmap.Raw)
	}
	if err != nil {
		return err
	}

	if len(cli.Fields) == 0 {
		_, err = fmt.Fprintln(stdout, root.String())
		return err
	}
	m := a.Mapper(root)
	for _, field := range cli.Fields {
		kp, typ := splitField(field)
		s, err := render(m.At(jsonmap.ParseKeyPath(kp)), typ)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(stdout, "%s\t%s\n", kp, s); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg := config.NewConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	// flags override the file
	if cli.Date != "" {
		cfg.Date = config.DateConfig{Strategy: cli.Date}
	}
	if cli.Keys != "" {
		cfg.Keys = cli.Keys
	}
	if cli.Missing != "" {
		cfg.Missing = cli.Missing
	}
	if cli.Driver != "" {
		cfg.Driver = cli.Driver
	}
	if cli.DuplicateKeys != "" {
		cfg.Limits.DuplicateKeys = cli.DuplicateKeys
	}
	if cli.Comments {
		cfg.Comments = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}
	return cfg, nil
}

func newLogger(name string, w io.Writer) (jsonmap.Logger, func(), error) {
	switch name {
	case "", "zap":
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		zl := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
		return jmzap.ZapLogger{L: zl}, func() { _ = zl.Sync() }, nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logrus.DebugLevel)
		return jmlogrus.LogrusLogger{E: logrus.NewEntry(l)}, func() {}, nil
	case "slog":
		h := stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: stdslog.LevelDebug})
		return jmslog.Logger{L: stdslog.New(h)}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown logger %q", name)
}

// splitField splits "user.id:int" into its keypath and type. The type
// defaults to raw.
func splitField(field string) (string, string) {
	if i := strings.LastIndexByte(field, ':'); i >= 0 {
		return field[:i], field[i+1:]
	}
	return field, "raw"
}

func render(m *jsonmap.Mapper, typ string) (string, error) {
	switch typ {
	case "raw":
		v, err := jsonmap.Raw(m)
		return v.String(), err
	case "string":
		return jsonmap.String(m)
	case "int":
		i, err := jsonmap.Int64(m)
		return strconv.FormatInt(i, 10), err
	case "uint":
		u, err := jsonmap.Uint64(m)
		return strconv.FormatUint(u, 10), err
	case "float":
		f, err := jsonmap.Float64(m)
		return strconv.FormatFloat(f, 'g', -1, 64), err
	case "bool":
		b, err := jsonmap.Bool(m)
		return strconv.FormatBool(b), err
	case "time":
		t, err := jsonmap.Time(m)
		return t.UTC().Format(time.RFC3339Nano), err
	case "bytes":
		b, err := jsonmap.Bytes(m)
		return base64.StdEncoding.EncodeToString(b), err
	case "url":
		u, err := jsonmap.URL(m)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	case "strings":
		ss, err := jsonmap.ArrayOf(jsonmap.String)(m)
		return strings.Join(ss, ","), err
	}
	return "", fmt.Errorf("unknown field type %q", typ)
}
