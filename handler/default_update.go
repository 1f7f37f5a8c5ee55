// default_update.go is file declaring method running whole pipeline of role tagging once

package handler

import (
	"consultags/consul/agent"
	"consultags/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/eapache/go-resiliency/deadline"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	"github.com/sirupsen/logrus"
)

var (
	errConsulAgentNotSet = errors.New("consul agent is not set, please set it with ConsulAgent")
	errProbeRunnerNotSet = errors.New("probe runner is not set, please set it with ProbeRunner")
)

// UpdateRoleTags run health check command, classify role & register service record with role tag.
// returned bytes are raw response of catalog register, or JSON of record if cfg.DryRun is set.
func (h *_default) UpdateRoleTags(ctx context.Context, cfg entity.Config) (resp []byte, err error) {
	switch {
	case h.consulAgent == nil:
		err = WithKind(ErrConfiguration, errConsulAgentNotSet)
		return
	case h.probeRunner == nil:
		err = WithKind(ErrConfiguration, errProbeRunnerNotSet)
		return
	}

	if err = h.validate.Struct(cfg); err != nil {
		err = WithKind(ErrConfiguration, err)
		return
	}

	runID := uuid.New().String()
	entry := h.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"service": cfg.ServiceName,
	})

	topSpan := h.tracer.StartSpan("UpdateRoleTags")
	topSpan.SetTag("run_id", runID).SetTag("service", cfg.ServiceName).SetTag("dry_run", cfg.DryRun)
	defer func() { finishSpan(topSpan, err) }()

	if cfg.Timeout <= 0 {
		return h.updateRoleTags(ctx, entry, topSpan, cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []byte
	err = deadline.New(cfg.Timeout).Run(func(stopper <-chan struct{}) (runErr error) {
		go func() {
			select {
			case <-stopper:
				cancel()
			case <-ctx.Done():
			}
		}()
		out, runErr = h.updateRoleTags(ctx, entry, topSpan, cfg)
		return
	})

	if err == deadline.ErrTimedOut {
		err = WithKind(ErrTimeout, fmt.Errorf("role tagging did not finish in %s", cfg.Timeout))
		return
	}

	resp = out
	return
}

func (h *_default) updateRoleTags(ctx context.Context, entry *logrus.Entry, topSpan opentracing.Span, cfg entity.Config) (resp []byte, err error) {
	probeSpan := h.tracer.StartSpan("RunHealthCheck", opentracing.ChildOf(topSpan.Context()))
	probeSpan.SetTag("command", cfg.Command)
	output, err := h.probeRunner.Run(ctx, cfg.Command)
	probeSpan.LogFields(log.String("output", output))
	finishSpan(probeSpan, err)
	if err != nil {
		err = WithKind(ErrProbe, err)
		return
	}

	roleTags := RoleTags{Active: cfg.ActiveTag, Standby: cfg.StandbyTag}
	classified := ClassifyRole(output, cfg.ResultTrue, cfg.ResultFalse, roleTags)
	topSpan.LogFields(log.Object("classified_tags", classified))
	entry = entry.WithField("classified_tags", classified)
	if len(classified) == 0 {
		entry.Warnf("health check output matched neither result, tags are left unchanged, output: %q", output)
	} else {
		entry.Info("classified role of node from health check output")
	}

	nodeID, err := h.readNodeID(cfg.ConsulDataDir)
	if err != nil {
		err = WithKind(ErrNodeIdentity, err)
		return
	}
	entry = entry.WithField("node_id", nodeID)
	topSpan.SetTag("node_id", nodeID)

	lookupSpan := h.tracer.StartSpan("GetServiceRecord", opentracing.ChildOf(topSpan.Context()))
	record, err := h.consulAgent.GetServiceRecord(ctx, nodeID)
	finishSpan(lookupSpan, err)
	switch {
	case err == nil:
	case errors.Is(err, agent.ErrServiceRecordNotFound), errors.Is(err, agent.ErrMalformedCatalogResponse):
		err = WithKind(ErrCatalogProtocol, err)
		return
	default:
		err = WithKind(ErrCatalogTransport, err)
		return
	}

	registered := MutateRecord(record, classified, roleTags, cfg.ReplaceRoleTags)
	entry = entry.WithFields(logrus.Fields{
		"node":       registered.Node,
		"service_id": registered.Service.ID,
		"tags":       registered.Service.Tags,
	})

	if cfg.DryRun {
		if resp, err = json.Marshal(registered); err != nil {
			err = fmt.Errorf("unable to marshal service record, err: %v", err)
			return
		}
		entry.Info("dry run, service record is not registered")
		return
	}

	registerSpan := h.tracer.StartSpan("RegisterEntity", opentracing.ChildOf(topSpan.Context()))
	registerSpan.SetTag("node", registered.Node).SetTag("service_id", registered.Service.ID)
	resp, err = h.consulAgent.RegisterEntity(ctx, registered)
	registerSpan.LogFields(log.String("response", string(resp)))
	finishSpan(registerSpan, err)
	if err != nil {
		err = WithKind(ErrCatalogTransport, err)
		return
	}

	entry.Info("registered service record with role tags in catalog")
	return
}

// mark span as error if err is not nil & finish it
func finishSpan(span opentracing.Span, err error) {
	if err != nil {
		ext.Error.Set(span, true)
		span.LogFields(log.Error(err))
	}
	span.Finish()
}
