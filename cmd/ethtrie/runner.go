// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/dageth/internal/log"
	"github.com/ChainSafe/dageth/internal/metrics/prometheus"
	"github.com/ChainSafe/dageth/pkg/ethtrie"
	"github.com/ChainSafe/dageth/pkg/trie/node"
	"github.com/ethereum/go-ethereum/common/hexutil"
	prometheusclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli"
)

var (
	ErrKindMissing     = errors.New("trie kind is not set")
	ErrEncodingMissing = errors.New("hex encoding argument is missing")
)

type runner struct {
	config   Config
	registry *prometheusclient.Registry
	codec    *ethtrie.Codec
}

func (r *runner) setup(ctx *cli.Context) (err error) {
	if path := ctx.String(ConfigFlag.Name); path != "" {
		logger.Debugf("loading toml configuration from %s", path)
		r.config, err = loadConfig(path)
		if err != nil {
			return err
		}
	}

	level, err := getLogLevel(ctx, LogFlag.Name, r.config.Log.Level, log.Info)
	if err != nil {
		return fmt.Errorf("cannot get log level: %w", err)
	}
	log.PatchLevel(level)

	r.registry = prometheusclient.NewRegistry()
	codecMetrics, err := prometheus.New(r.registry)
	if err != nil {
		return fmt.Errorf("cannot create metrics: %w", err)
	}

	r.codec = ethtrie.New(ethtrie.WithMetrics(codecMetrics))
	return nil
}

func (r *runner) printMetrics(ctx *cli.Context) (err error) {
	if !ctx.Bool(MetricsFlag.Name) || r.registry == nil {
		return nil
	}

	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	for _, family := range families {
		_, err = expfmt.MetricFamilyToText(ctx.App.Writer, family)
		if err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func (r *runner) kind(ctx *cli.Context) (kind node.Kind, err error) {
	name := ctx.String(KindFlag.Name)
	if name == "" {
		name = r.config.Codec.DefaultKind
	}
	if name == "" {
		return kind, fmt.Errorf("%w: use --%s or [codec] default-kind", ErrKindMissing, KindFlag.Name)
	}
	return r.codec.Table().Parse(name)
}

func (r *runner) decodeArgs(ctx *cli.Context) (kind node.Kind, encoded []byte, err error) {
	kind, err = r.kind(ctx)
	if err != nil {
		return kind, nil, err
	}

	s := ctx.Args().First()
	if s == "" {
		return kind, nil, ErrEncodingMissing
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	encoded, err = hexutil.Decode(s)
	if err != nil {
		return kind, nil, fmt.Errorf("decoding hex encoding: %w", err)
	}
	return kind, encoded, nil
}

func (r *runner) decodeAction(ctx *cli.Context) (err error) {
	kind, encoded, err := r.decodeArgs(ctx)
	if err != nil {
		return err
	}

	n, err := r.codec.Decode(kind.Code, encoded)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, n.String())
	return err
}

func (r *runner) cidAction(ctx *cli.Context) (err error) {
	kind, encoded, err := r.decodeArgs(ctx)
	if err != nil {
		return err
	}

	n, err := r.codec.Decode(kind.Code, encoded)
	if err != nil {
		return err
	}

	_, id, err := r.codec.EncodeAndHash(kind.Code, n)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, id)
	return err
}

func (r *runner) kindsAction(ctx *cli.Context) (err error) {
	for _, kind := range r.codec.Table().Kinds() {
		_, err = fmt.Fprintf(ctx.App.Writer, "%s\t0x%x\t%s\t%s\n",
			kind.Name, uint64(kind.Code), kind.Code, valueDescription(kind))
		if err != nil {
			return err
		}
	}
	return nil
}

func valueDescription(kind node.Kind) string {
	return fmt.Sprintf("%T", kind.Values)
}
