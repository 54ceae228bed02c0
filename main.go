package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/braintree/manners"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qbotools/quickbooksrelay/auth"
	"github.com/qbotools/quickbooksrelay/quickbooks"
	"github.com/qbotools/quickbooksrelay/relay"
	"github.com/qbotools/quickbooksrelay/session"
)

const description = "QuickBooks oauth relay"
const version = "0.1.0"
const usage = " <options>" + "\n\n  " + description

// Opts are the command line and environment options
type Opts struct {
	Port         string `short:"p" long:"port" description:"port to run on" default:"8000"`
	Addr         string `short:"n" long:"address" description:"network address to run on" default:"127.0.0.1"`
	ClientID     string `long:"clientid" env:"CLIENT_ID" description:"oauth2 client identifier" required:"true"`
	ClientSecret string `long:"clientsecret" env:"CLIENT_SECRET" description:"oauth2 client secret" required:"true"`
	Redirect     string `short:"r" long:"redirect" env:"REDIRECT_URI" description:"oauth2 redirect address" default:"http://localhost:8000/callback"`
	Environment  string `short:"e" long:"environment" env:"ENVIRONMENT" description:"QuickBooks environment" choice:"sandbox" choice:"production" default:"sandbox"`
	SessionFile  string `short:"s" long:"sessionfile" env:"SESSION_FILE" description:"path of the persisted session record" default:"oauth_session.json"`
}

func main() {

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var options Opts
	var parser = flags.NewParser(&options, flags.Default)
	parser.Usage = fmt.Sprintf("%s : %s", usage, version)

	if _, err := parser.Parse(); err != nil {
		flagError := err.(*flags.Error)
		if flagError.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
		}
		os.Exit(1)
	}

	authClient, err := auth.NewClient(
		options.ClientID,
		options.ClientSecret,
		options.Redirect,
		"", // use the Intuit authorization url
		"", // use the Intuit token url
	)
	if err != nil {
		log.Error().Err(err).Msg("auth client setup error")
		os.Exit(1)
	}

	store, err := session.NewStore(session.NewFileStorage(options.SessionFile), authClient)
	if err != nil {
		log.Error().Err(err).Msg("session store setup error")
		os.Exit(1)
	}

	books := quickbooks.NewClient(options.Environment, "")
	server := relay.NewServer(store, authClient, books)

	// endpoint routing; gorilla mux is used because "/" in http.NewServeMux
	// is a catch-all pattern
	r := mux.NewRouter()
	server.Routes(r)

	// create a handler wrapped in a recovery handler and logging handler
	hdl := handlers.RecoveryHandler()(
		handlers.LoggingHandler(os.Stdout, r))

	// configure server options
	httpServer := &http.Server{
		Addr:         options.Addr + ":" + options.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		Handler:      hdl,
	}

	// catch signals
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go listenForShutdown(ch)

	log.Info().
		Str("addr", httpServer.Addr).
		Str("environment", options.Environment).
		Msg("serving")

	// wrap server with manners
	if err := manners.ListenAndServe(httpServer.Addr, httpServer.Handler); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

func listenForShutdown(ch <-chan os.Signal) {
	<-ch
	log.Info().Msg("closing the server")
	manners.Close()
}
