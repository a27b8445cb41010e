package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/auth"
	"github.com/trezcool/darasa/core/catalog"
	emailsvc "github.com/trezcool/darasa/services/email"
	identitysvc "github.com/trezcool/darasa/services/identity"
	logsvc "github.com/trezcool/darasa/services/logger"
	gcsblob "github.com/trezcool/darasa/storage/blob/gcs"
	catalogrepo "github.com/trezcool/darasa/storage/catalog"
	firestorestore "github.com/trezcool/darasa/storage/docstore/firestore"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	ctx := context.Background()

	// set up stores
	store, err := firestorestore.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening document store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error("closing document store", err)
		}
	}()

	blobs, err := gcsblob.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening blob store: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	var verifier auth.Verifier
	verifier, err = identitysvc.NewFirebaseVerifier(ctx, conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up identity verifier: %v", err), err)
	}

	repo := catalogrepo.NewRepository(store)
	catalogSvc := catalog.NewService(repo, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			CatalogSvc: catalogSvc,
			Repo:       repo,
			Blobs:      blobs,
			MailSvc:    mailSvc,
			Verifier:   verifier,
			Validate:   validate,
			Translator: translator,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
