// default.go is file to declare default struct implementing probe.Runner with os/exec

package runner

import (
	"github.com/sirupsen/logrus"
	"io/ioutil"
)

type _default struct {
	logger *logrus.Logger
}

func Default(setters ...FieldSetter) *_default {
	return newDefault(setters...)
}

func newDefault(setters ...FieldSetter) (h *_default) {
	h = new(_default)
	for _, setter := range setters {
		setter(h)
	}
	if h.logger == nil {
		h.logger = logrus.New()
		h.logger.SetOutput(ioutil.Discard)
	}
	return
}

type FieldSetter func(*_default)

func Logger(l *logrus.Logger) FieldSetter {
	return func(d *_default) {
		d.logger = l
	}
}
