package handler

import (
	"consultags/consul"
	entityvalidator "consultags/entity/validator"
	"consultags/probe"
	"consultags/tool/nodeid"
	"github.com/go-playground/validator/v10"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"io/ioutil"
)

type _default struct {
	consulAgent consul.Agent
	probeRunner probe.Runner
	logger      *logrus.Logger
	validate    *validator.Validate
	tracer      opentracing.Tracer

	// function reading node id from consul data directory, replaced in test
	readNodeID func(dataDir string) (string, error)
}

func Default(setters ...FieldSetter) (h *_default) {
	h = new(_default)
	for _, setter := range setters {
		setter(h)
	}

	if h.logger == nil {
		h.logger = logrus.New()
		h.logger.SetOutput(ioutil.Discard)
	}
	if h.validate == nil {
		h.validate = entityvalidator.New()
	}
	if h.tracer == nil {
		h.tracer = opentracing.NoopTracer{}
	}
	if h.readNodeID == nil {
		h.readNodeID = nodeid.ReadFromDataDir
	}

	return
}

type FieldSetter func(*_default)

func ConsulAgent(consulAgent consul.Agent) FieldSetter {
	return func(h *_default) {
		h.consulAgent = consulAgent
	}
}

func ProbeRunner(probeRunner probe.Runner) FieldSetter {
	return func(h *_default) {
		h.probeRunner = probeRunner
	}
}

func Logger(logger *logrus.Logger) FieldSetter {
	return func(h *_default) {
		h.logger = logger
	}
}

func Validate(validate *validator.Validate) FieldSetter {
	return func(h *_default) {
		h.validate = validate
	}
}

func Tracer(tracer opentracing.Tracer) FieldSetter {
	return func(h *_default) {
		h.tracer = tracer
	}
}

func NodeIDReader(read func(dataDir string) (string, error)) FieldSetter {
	return func(h *_default) {
		h.readNodeID = read
	}
}
