package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core/catalog"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	svc      *catalog.Service
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  curricula - list the known curricula and their grades")
	fmt.Println("  registersubject -curriculum ID -grade GRADE -name NAME - register a subject")
	fmt.Println("  listsubjects -curriculum ID -grade GRADE - list the grade's subjects")
	fmt.Println("  deletesubject -curriculum ID -grade GRADE -subject ID - delete a subject")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	registerCmd := flag.NewFlagSet("registersubject", flag.ExitOnError)
	registerCur := registerCmd.String("curriculum", "", "The curriculum id (eg. cbc).")
	registerGrade := registerCmd.String("grade", "", "The grade within the curriculum (eg. grade_5).")
	registerName := registerCmd.String("name", "", "The subject name.")

	listCmd := flag.NewFlagSet("listsubjects", flag.ExitOnError)
	listCur := listCmd.String("curriculum", "", "The curriculum id (eg. cbc).")
	listGrade := listCmd.String("grade", "", "The grade within the curriculum (eg. grade_5).")

	deleteCmd := flag.NewFlagSet("deletesubject", flag.ExitOnError)
	deleteCur := deleteCmd.String("curriculum", "", "The curriculum id (eg. cbc).")
	deleteGrade := deleteCmd.String("grade", "", "The grade within the curriculum (eg. grade_5).")
	deleteSubject := deleteCmd.String("subject", "", "The subject document id.")

	switch args[1] {
	case "curricula":
		return cli.printCurricula()
	case "registersubject":
		if err := registerCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *registerCur == "" || *registerGrade == "" || *registerName == "" {
			registerCmd.Usage()
			return errHelp
		}
		return cli.registerSubject(*registerCur, *registerGrade, *registerName)
	case "listsubjects":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *listCur == "" || *listGrade == "" {
			listCmd.Usage()
			return errHelp
		}
		return cli.listSubjects(*listCur, *listGrade)
	case "deletesubject":
		if err := deleteCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteCur == "" || *deleteGrade == "" || *deleteSubject == "" {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.deleteSubject(*deleteCur, *deleteGrade, *deleteSubject)
	default:
		cli.printUsage()
		return errHelp
	}
}
