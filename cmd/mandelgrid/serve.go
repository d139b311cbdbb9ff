package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marben/mandelgrid"
	"github.com/marben/mandelgrid/engine"
	"github.com/marben/mandelgrid/stream"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a progressive live view: tiles stream to viewers as they finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			vp, params, err := cfg.grid()
			if err != nil {
				return err
			}

			codec, err := stream.NewCodec()
			if err != nil {
				return err
			}
			defer codec.Close()

			pool := engine.NewPool(cfg.Workers)
			defer pool.Close()

			l := stream.NewListener(cmd.Context(), fmt.Sprintf(":%d/ws", port))
			defer l.Close()

			mux := http.NewServeMux()
			mux.HandleFunc("/ws", l.Handler())
			mux.Handle("/", http.FileServer(http.Dir("./static")))
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				logrus.Infof("listening on http://localhost:%d", port)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				return srv.Close()
			})
			g.Go(func() error {
				for {
					conn, err := l.Accept()
					if err != nil {
						return err
					}
					logrus.Infof("viewer connected: %s", conn.RemoteAddr())
					go func() {
						defer conn.Close()
						if err := streamGrid(conn, codec, pool, cfg, vp, params); err != nil {
							logrus.Warnf("viewer %s: %v", conn.RemoteAddr(), err)
						}
					}()
				}
			})
			return g.Wait()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "http/websocket port")
	return cmd
}

// streamGrid runs one evaluation for a connected viewer, forwarding each
// finished tile as an encoded frame. Workers hand frames to a single writer
// goroutine so writes to the connection never interleave.
func streamGrid(conn net.Conn, codec *stream.Codec, pool *engine.Pool, cfg Config, vp mandelgrid.Viewport, params mandelgrid.FractalParams) error {
	frames := make(chan []byte, 64)
	writer := make(chan error, 1)
	go func() {
		var err error
		for msg := range frames {
			if err != nil {
				continue // keep draining so workers never block on a dead viewer
			}
			_, werr := conn.Write(msg)
			err = werr
		}
		writer <- err
	}()

	opts := cfg.engineOptions()
	opts.OnTile = func(t mandelgrid.Tile, rows []uint16) {
		msg, err := codec.Encode(stream.Frame{Tile: t, Width: vp.Width, Data: rows})
		if err != nil {
			logrus.Errorf("encode %s: %v", t, err)
			return
		}
		frames <- msg
	}
	eng := engine.New(pool, opts)

	_, evalErr := eng.EvaluateGrid(vp, params, cfg.Iters)
	close(frames)
	if werr := <-writer; werr != nil {
		return fmt.Errorf("write: %w", werr)
	}
	return evalErr
}
