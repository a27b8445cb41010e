package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
	logsvc "github.com/trezcool/darasa/services/logger"
	catalogrepo "github.com/trezcool/darasa/storage/catalog"
	firestorestore "github.com/trezcool/darasa/storage/docstore/firestore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	svcLogger := logsvc.NewRollbarLogger(logger, conf)
	svcLogger.Enable(false) // CLI errors go to stdout only

	ctx := context.Background()
	store, err := firestorestore.Open(ctx, conf)
	errAndDie(err)
	defer store.Close()

	validate := validator.New()
	core.InitValidators(validate, newTranslator())

	// start CLI
	cli := commandLine{
		svc:      catalog.NewService(catalogrepo.NewRepository(store), svcLogger),
		validate: validate,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
