// Package main provides the lemur CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/config"
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/logger"
	"github.com/lemur-ml/lemur/internal/nn"
	"github.com/lemur-ml/lemur/internal/optim"
)

const version = "v0.1.0"

func main() {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		os.Exit(2)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	kernel.Seed(cfg.Seed)
	kernel.DefaultPrintOptions.Scientific = cfg.Scientific
	kernel.EnableParallel(cfg.Parallel)

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = serveMetrics(cfg.MetricsAddr)
	}

	if err := run(cfg, args, os.Stdout); err != nil {
		logger.Log.Error("command failed", "error", err)
		os.Exit(1)
	}

	if srv != nil {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Log.Info("serving metrics until interrupted", "addr", cfg.MetricsAddr)
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("metrics server", "error", err)
		}
	}()
	logger.Log.Info("metrics available", "url", fmt.Sprintf("http://%s/metrics", addr))
	return srv
}

func run(cfg config.Config, args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(w, "lemur %s\n", version)
		return nil
	case "demo":
		return demo(w)
	case "fit":
		return fit(cfg, w)
	default:
		usage(w)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "lemur %s - tensors with reverse-mode autodiff\n\n", version)
	fmt.Fprintln(w, "Usage: lemur [flags] <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  demo       arange(32) -> view [1 1 2 4 4] -> sum -> backward")
	fmt.Fprintln(w, "  fit        Fit a line with Linear + MSE + SGD")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags: -log-level -log-format -metrics-addr -seed -scientific -epochs -lr -parallel")
}

// demo builds x = arange(32).view(1,1,2,4,4), y = x.sum() and prints x
// with its gradient and the graph below y.
func demo(w io.Writer) error {
	g := autodiff.NewGraph()
	defer g.Reset()

	a, err := g.Arange(32, true)
	if err != nil {
		return err
	}
	x, err := autodiff.View(a, g.Descriptor(1, 1, 2, 4, 4), true)
	if err != nil {
		return err
	}
	y, err := autodiff.SumAll(x, false)
	if err != nil {
		return err
	}
	if err := g.Backward(y); err != nil {
		return err
	}

	fmt.Fprintf(w, "lemur %s\n\n", version)
	fmt.Fprintln(w, x)
	fmt.Fprintln(w)
	fmt.Fprintln(w, y.GraphString())
	return nil
}

// fit regresses y = 3x - 0.5 plus Gaussian noise with one Linear layer.
func fit(cfg config.Config, w io.Writer) error {
	const n = 32
	g := autodiff.NewGraph()
	defer g.Reset()

	xs := make([]float32, n)
	for i := range xs {
		xs[i] = -1 + 2*float32(i)/float32(n-1)
	}
	noise := kernel.MustEmpty(kernel.MustShape(n))
	noise.RandomNormal(0, 0.05)
	ys := noise.Values()
	noise.Release()
	for i, x := range xs {
		ys[i] += 3*x - 0.5
	}

	x, err := g.FromSlice(xs, kernel.MustShape(n, 1), false)
	if err != nil {
		return err
	}
	y, err := g.FromSlice(ys, kernel.MustShape(n, 1), false)
	if err != nil {
		return err
	}
	layer, err := nn.NewLinear(g, 1, 1)
	if err != nil {
		return err
	}
	mse := nn.NewMSELoss()
	opt := optim.NewSGD(layer.Parameters(), optim.SGDConfig{LR: float32(cfg.LR), Momentum: 0.5})

	every := max(cfg.Epochs/10, 1)
	var loss float32
	for epoch := range cfg.Epochs {
		mark := g.Mark()
		pred, err := layer.Forward(x)
		if err != nil {
			return err
		}
		l, err := mse.Forward(pred, y)
		if err != nil {
			return err
		}
		if err := g.Backward(l); err != nil {
			return err
		}
		loss = l.Values()[0]
		opt.Step()
		opt.ZeroGrad()
		g.FreeSince(mark)

		if epoch%every == 0 || epoch == cfg.Epochs-1 {
			logger.Log.Info("fit", "epoch", epoch, "loss", loss)
		}
	}

	fmt.Fprintf(w, "weight %s\nbias   %s\nloss   %g\n",
		layer.Weight().Tensor().Data(), layer.Bias().Tensor().Data(), loss)
	return nil
}
