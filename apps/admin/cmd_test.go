package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/catalog"
	catalogrepo "github.com/trezcool/darasa/storage/catalog"
	inmemstore "github.com/trezcool/darasa/storage/docstore/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

var repo catalog.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()
	testutil.InitConfig()
	validate, _ := testutil.NewValidator()

	repo = catalogrepo.NewRepository(inmemstore.Open())
	return &commandLine{
		svc:      catalog.NewService(repo, testutil.NopLogger{}),
		validate: validate,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	existing := testutil.CreateSubject(t, repo, catalog.Ref{Curriculum: "cbc", Grade: "grade_5"}, "Mathematics")

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "curricula", args: []string{"curricula"}},
		{name: "registersubject: no args", args: []string{"registersubject"}, wantErr: errHelp},
		{name: "registersubject: missing name", args: []string{"registersubject", "-curriculum", "cbc", "-grade", "grade_5"}, wantErr: errHelp},
		{name: "registersubject: unknown curriculum", args: []string{"registersubject", "-curriculum", "lol", "-grade", "grade_5", "-name", "Chemistry"}, wantErr: catalog.ErrCurriculumUnknown},
		{name: "registersubject: unknown grade", args: []string{"registersubject", "-curriculum", "cbc", "-grade", "grade_9", "-name", "Chemistry"}, wantErr: catalog.ErrGradeUnknown},
		{
			name:       "registersubject: duplicate name",
			args:       []string{"registersubject", "-curriculum", "cbc", "-grade", "grade_5", "-name", "mathematics"},
			wantErrStr: catalog.ErrSubjectExists.Error(),
		},
		{name: "registersubject", args: []string{"registersubject", "-curriculum", "cbc", "-grade", "grade_5", "-name", "Chemistry"}},
		{name: "listsubjects: no args", args: []string{"listsubjects"}, wantErr: errHelp},
		{name: "listsubjects", args: []string{"listsubjects", "-curriculum", "cbc", "-grade", "grade_5"}},
		{name: "deletesubject: no args", args: []string{"deletesubject"}, wantErr: errHelp},
		{name: "deletesubject: not found", args: []string{"deletesubject", "-curriculum", "cbc", "-grade", "grade_5", "-subject", "nope"}, wantErr: catalog.ErrNotFound},
		{name: "deletesubject", args: []string{"deletesubject", "-curriculum", "cbc", "-grade", "grade_5", "-subject", existing.ID}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				if tt.wantErr != nil || tt.wantErrStr != "" {
					t.Errorf("cli.run() error = nil, want %v%s", tt.wantErr, tt.wantErrStr)
				}
				return
			}
			if tt.wantErr != nil {
				if errors.Cause(err) != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}

	// the deleted subject must be gone
	ref := catalog.Ref{Curriculum: "cbc", Grade: "grade_5", Subject: existing.ID}
	if _, err := repo.GetSubject(context.Background(), ref); err == nil {
		t.Error("expected deleted subject to be gone")
	}
}
