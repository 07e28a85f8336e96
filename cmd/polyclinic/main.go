package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/daariikk/myhelp-web/cmd/polyclinic/handlers"
	"github.com/daariikk/myhelp-web/pkg/buildtime"
	kcf "github.com/daariikk/myhelp-web/pkg/configs/frontend"
	"github.com/daariikk/myhelp-web/pkg/echoutil"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/daariikk/myhelp-web/pkg/photos"
	"github.com/daariikk/myhelp-web/pkg/session"
	"github.com/daariikk/myhelp-web/pkg/utils/filewatch"
	"github.com/daariikk/myhelp-web/pkg/views"
)

const shutdownGrace = 15 * time.Second

func main() {
	configPath := flag.String("config-path", "", "frontend config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	pversion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *pversion {
		fmt.Println(buildtime.VersionString())
		return
	}
	log.Printf("polyclinic web %s", buildtime.VersionString())

	conf, err := kcf.LoadFrontendConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	jar := session.Jar{Secure: conf.Production}
	e.HTTPErrorHandler = handlers.ErrorHandler(e, jar)
	e.Use(middleware.Recover())
	e.Use(echoutil.LogHandlerFunc)

	renderer, err := views.New()
	if err != nil {
		log.Fatalf("can not load templates: %s", err)
	}
	e.Renderer = renderer

	client, err := myhelp.NewClient(conf.BackendApiRoot, conf.RequestTimeout)
	if err != nil {
		log.Fatalf("can not create api client: %s", err)
	}

	store, err := photos.Open(ctx, conf.Photos)
	if err != nil {
		log.Fatalf("can not open photo store: %s", err)
	}

	routes(e, server{
		client:      client,
		jar:         jar,
		store:       store,
		apiRoot:     conf.BackendApiRoot,
		httpclient:  &http.Client{Timeout: conf.RequestTimeout},
		bcryptCost:  conf.BcryptCost,
		uploadLimit: conf.UploadLimit,
		now:         time.Now,
	})

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	// quit when the config file is updated, to be restarted with new one.
	watchctx, cancel, err := filewatch.UntilModifyContext(ctx, *configPath)
	if err != nil {
		log.Fatalf("can not watch configration: %s", err)
	}
	defer cancel()

	eg, egctx := errgroup.WithContext(watchctx)
	eg.Go(func() error {
		var err error
		if cert, key := *pcert, *pkey; cert != "" && key != "" {
			err = e.StartTLS(":"+conf.ServerPort, cert, key)
		} else {
			err = e.Start(":" + conf.ServerPort)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-egctx.Done()
		if cause := context.Cause(watchctx); cause != nil {
			log.Printf("shutting down: %s", cause)
		}

		graceful, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return e.Shutdown(graceful)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalf("server stopped: %s", err)
	}
}
