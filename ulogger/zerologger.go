package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ordishs/gocore"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	w       io.Writer
	pretty  bool
}

func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "utxolock"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	pretty := gocore.Config().GetBool("PRETTY_LOGS", true)
	if opts.pretty != nil {
		pretty = *opts.pretty
	}

	var z *ZLoggerWrapper
	if pretty {
		z = prettyZeroLogger(opts.writer, service)
	} else {
		z = &ZLoggerWrapper{
			Logger: zerolog.New(opts.writer).With().
				Str("service", service).
				CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).
				Timestamp().
				Logger(),
			service: service,
			w:       opts.writer,
		}
	}

	z.SetLogLevel(opts.logLevel)

	return z
}

func prettyZeroLogger(writer io.Writer, service string) *ZLoggerWrapper {
	isTerminal := false
	if f, ok := writer.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}

	output := zerolog.ConsoleWriter{
		Out:        writer,
		NoColor:    !isTerminal,
		TimeFormat: time.RFC3339,
	}

	output.FormatTimestamp = func(i interface{}) string {
		s, _ := i.(string)
		parse, _ := time.Parse(time.RFC3339, s)

		return parse.Format("15:04:05")
	}

	output.FormatLevel = func(i interface{}) string {
		l := strings.ToUpper(fmt.Sprintf("%-6s", i))

		switch i {
		case "debug":
			l = colorize(l, colorBlue, !isTerminal)
		case "info":
			l = colorize(l, colorGreen, !isTerminal)
		case "warn":
			l = colorize(l, colorYellow, !isTerminal)
		case "error", "fatal", "panic":
			l = colorize(l, colorRed, !isTerminal)
		default:
			l = colorize(l, colorWhite, !isTerminal)
		}

		return fmt.Sprintf("| %s|", l)
	}

	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("| %-6s| %s", service, i)
	}

	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	output.FormatCaller = func(i interface{}) string {
		c, _ := i.(string)
		if len(c) == 0 {
			return c
		}

		if cwd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(cwd, c); err == nil {
				c = rel
			}
		}

		split := strings.Split(c, "/")
		currentElement := len(split) - 1
		c = split[currentElement]
		currentElement--

		for currentElement >= 0 && len(c)+len(split[currentElement])+1 <= 32 {
			c = split[currentElement] + "/" + c
			currentElement--
		}

		return colorize(fmt.Sprintf("%-32s", c), colorBold, !isTerminal)
	}

	return &ZLoggerWrapper{
		Logger: zerolog.New(output).With().
			CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).
			Timestamp().
			Logger(),
		service: service,
		w:       writer,
		pretty:  true,
	}
}

func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	// make sure we set the same options as the parent
	o := []Option{
		WithWriter(z.w),
		WithLoggerType("zerolog"),
		WithLevel(z.Logger.GetLevel().String()),
		WithPretty(z.pretty),
	}

	return NewZeroLogger(service, append(o, options...)...)
}

func (z *ZLoggerWrapper) Duplicate(options ...Option) Logger {
	opts := &Options{logLevel: z.Logger.GetLevel().String()}
	for _, o := range options {
		o(opts)
	}

	dup := &ZLoggerWrapper{
		Logger:  z.Logger,
		service: z.service,
		w:       z.w,
		pretty:  z.pretty,
	}

	if opts.writer != nil {
		dup.Logger = dup.Logger.Output(opts.writer)
		dup.w = opts.writer
	}

	dup.SetLogLevel(opts.logLevel)

	return dup
}

func (z *ZLoggerWrapper) SetLogLevel(logLevel string) {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		z.Logger = z.Logger.Level(zerolog.DebugLevel)
	case "INFO":
		z.Logger = z.Logger.Level(zerolog.InfoLevel)
	case "WARN":
		z.Logger = z.Logger.Level(zerolog.WarnLevel)
	case "ERROR":
		z.Logger = z.Logger.Level(zerolog.ErrorLevel)
	case "FATAL":
		z.Logger = z.Logger.Level(zerolog.FatalLevel)
	case "PANIC":
		z.Logger = z.Logger.Level(zerolog.PanicLevel)
	default:
		z.Logger = z.Logger.Level(zerolog.InfoLevel)
	}
}

func (z *ZLoggerWrapper) LogLevel() int {
	switch z.Logger.GetLevel() {
	case zerolog.DebugLevel:
		return LevelDebug
	case zerolog.InfoLevel:
		return LevelInfo
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel:
		return LevelError
	case zerolog.FatalLevel:
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}

// colorize returns the string s wrapped in ANSI code c, unless disabled is true or c is 0.
func colorize(s interface{}, c int, disabled bool) string {
	e := os.Getenv("NO_COLOR")
	if e != "" || c == 0 {
		disabled = true
	}

	if disabled {
		return fmt.Sprintf("%s", s)
	}

	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
