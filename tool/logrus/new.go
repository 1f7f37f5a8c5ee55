// this package is used to separate generating logrus.Logger from main

package logrus

import (
	"fmt"
	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
	"io"
	"net"
	"os"
	"time"
)

const (
	LevelSilent = "silent"
	FormatText  = "text"
	FormatJSON  = "json"

	logstashDialTimeout = time.Second * 3
)

type noneWriter struct {
	io.Writer
}

func (n noneWriter) Write(p []byte) (_ int, _ error) {
	return len(p), nil
}

type options struct {
	level    string
	format   string
	out      io.Writer
	logstash string
	fields   logrus.Fields
}

type FieldSetter func(*options)

func Level(level string) FieldSetter {
	return func(o *options) {
		o.level = level
	}
}

func Format(format string) FieldSetter {
	return func(o *options) {
		o.format = format
	}
}

func Output(out io.Writer) FieldSetter {
	return func(o *options) {
		o.out = out
	}
}

// LogstashAddress set tcp address of logstash, hook is not added if empty
func LogstashAddress(addr string) FieldSetter {
	return func(o *options) {
		o.logstash = addr
	}
}

// Fields set fields sent to logstash with every entry
func Fields(fields logrus.Fields) FieldSetter {
	return func(o *options) {
		o.fields = fields
	}
}

// New create logger writing to stderr, stdout is reserved for catalog response
func New(setters ...FieldSetter) (logger *logrus.Logger, err error) {
	opts := &options{level: logrus.InfoLevel.String(), format: FormatText, out: os.Stderr}
	for _, setter := range setters {
		setter(opts)
	}

	logger = logrus.New()
	logger.SetOutput(opts.out)

	switch opts.format {
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		err = fmt.Errorf("unknown log format %q, please set one of %s, %s", opts.format, FormatText, FormatJSON)
		return
	}

	if opts.level == LevelSilent {
		logger.SetOutput(noneWriter{})
	} else {
		level, parseErr := logrus.ParseLevel(opts.level)
		if parseErr != nil {
			err = fmt.Errorf("unknown log level %q, err: %v", opts.level, parseErr)
			return
		}
		logger.SetLevel(level)
	}

	if opts.logstash != "" {
		conn, dialErr := net.DialTimeout("tcp", opts.logstash, logstashDialTimeout)
		if dialErr != nil {
			err = fmt.Errorf("unable to connect logstash %s, err: %v", opts.logstash, dialErr)
			return
		}
		logger.AddHook(logrustash.New(conn, logrustash.DefaultFormatter(opts.fields)))
	}

	return
}
