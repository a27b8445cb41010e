package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core/catalog"
)

func (cli *commandLine) printCurricula() error {
	for _, cur := range cli.svc.Curricula() {
		fmt.Printf("%s (%s)\n", cur.ID, cur.Name)
		for _, grade := range cur.Grades {
			fmt.Printf("  %s\n", grade)
		}
	}
	return nil
}

func (cli *commandLine) registerSubject(curriculum, grade, name string) error {
	ns := catalog.NewSubject{Name: name}
	if err := ns.Validate(cli.validate); err != nil {
		return err
	}

	ref := catalog.Ref{Curriculum: curriculum, Grade: grade}
	sub, err := cli.svc.RegisterSubject(context.Background(), ref, ns)
	if err != nil {
		return err
	}
	fmt.Printf("registered %q as %s\n", sub.Name, sub.ID)
	return nil
}

func (cli *commandLine) listSubjects(curriculum, grade string) error {
	ref := catalog.Ref{Curriculum: curriculum, Grade: grade}
	subs, err := cli.svc.ListSubjects(context.Background(), ref)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Println("no subjects registered")
		return nil
	}
	for _, sub := range subs {
		fmt.Printf("%s  %s\n", sub.ID, sub.Name)
	}
	return nil
}

func (cli *commandLine) deleteSubject(curriculum, grade, subject string) error {
	ref := catalog.Ref{Curriculum: curriculum, Grade: grade, Subject: subject}
	sub, err := cli.svc.GetSubject(context.Background(), ref)
	if err != nil {
		return err
	}
	if err := cli.svc.DeleteSubject(context.Background(), ref); err != nil {
		return err
	}
	fmt.Printf("deleted subject %q (%s)\n", sub.Name, sub.ID)
	return nil
}
