// Package catalogrepo implements catalog.Repository on the hierarchical
// document store, mapping typed entities to store documents through the
// catalog path resolver.
package catalogrepo

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/storage/docstore"
)

type repository struct {
	store docstore.Store
}

var _ catalog.Repository = (*repository)(nil) // interface compliance check

func NewRepository(store docstore.Store) catalog.Repository {
	return &repository{store: store}
}

// Subjects

func (repo *repository) CreateSubject(ctx context.Context, ref catalog.Ref, sub catalog.Subject) (catalog.Subject, error) {
	col, err := ref.Subjects()
	if err != nil {
		return catalog.Subject{}, err
	}
	id, err := repo.store.Create(ctx, col, subjectToMap(sub))
	if err != nil {
		return catalog.Subject{}, errors.Wrap(err, "creating subject")
	}
	sub.ID = id
	return sub, nil
}

func (repo *repository) ListSubjects(ctx context.Context, ref catalog.Ref) ([]catalog.Subject, error) {
	col, err := ref.Subjects()
	if err != nil {
		return nil, err
	}
	docs, err := repo.store.List(ctx, col)
	if err != nil {
		return nil, errors.Wrap(err, "listing subjects")
	}

	subs := make([]catalog.Subject, 0, len(docs))
	for _, doc := range docs {
		sub, err := subjectFromMap(doc.ID, doc.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding subject %q", doc.ID)
		}
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	return subs, nil
}

func (repo *repository) GetSubject(ctx context.Context, ref catalog.Ref) (catalog.Subject, error) {
	path, err := ref.SubjectPath()
	if err != nil {
		return catalog.Subject{}, err
	}
	data, err := repo.store.Get(ctx, path)
	if err != nil {
		if errors.Cause(err) == docstore.ErrNotFound {
			return catalog.Subject{}, catalog.ErrNotFound
		}
		return catalog.Subject{}, errors.Wrap(err, "getting subject")
	}
	return subjectFromMap(ref.Subject, data)
}

func (repo *repository) UpdateSubject(ctx context.Context, ref catalog.Ref, name string, updatedAt time.Time) error {
	path, err := ref.SubjectPath()
	if err != nil {
		return err
	}
	data := map[string]interface{}{fldName: name, fldUpdatedAt: updatedAt}
	return errors.Wrap(repo.store.Set(ctx, path, data, true /* merge */), "updating subject")
}

func (repo *repository) DeleteSubject(ctx context.Context, ref catalog.Ref) error {
	path, err := ref.SubjectPath()
	if err != nil {
		return err
	}
	return errors.Wrap(repo.store.Delete(ctx, path), "deleting subject")
}

// Topics

func (repo *repository) CreateTopic(ctx context.Context, ref catalog.Ref, topic catalog.Topic) (catalog.Topic, error) {
	col, err := ref.Topics()
	if err != nil {
		return catalog.Topic{}, err
	}
	id, err := repo.store.Create(ctx, col, topicToMap(topic))
	if err != nil {
		return catalog.Topic{}, errors.Wrap(err, "creating topic")
	}
	topic.ID = id
	return topic, nil
}

func (repo *repository) ListTopics(ctx context.Context, ref catalog.Ref) ([]catalog.Topic, error) {
	col, err := ref.Topics()
	if err != nil {
		return nil, err
	}
	docs, err := repo.store.List(ctx, col)
	if err != nil {
		return nil, errors.Wrap(err, "listing topics")
	}

	topics := make([]catalog.Topic, 0, len(docs))
	for _, doc := range docs {
		topic, err := topicFromMap(doc.ID, doc.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding topic %q", doc.ID)
		}
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].CreatedAt.Before(topics[j].CreatedAt) })
	return topics, nil
}

func (repo *repository) GetTopic(ctx context.Context, ref catalog.Ref) (catalog.Topic, error) {
	path, err := ref.TopicPath()
	if err != nil {
		return catalog.Topic{}, err
	}
	data, err := repo.store.Get(ctx, path)
	if err != nil {
		if errors.Cause(err) == docstore.ErrNotFound {
			return catalog.Topic{}, catalog.ErrNotFound
		}
		return catalog.Topic{}, errors.Wrap(err, "getting topic")
	}
	return topicFromMap(ref.Topic, data)
}

func (repo *repository) UpdateTopic(ctx context.Context, ref catalog.Ref, patch catalog.TopicPatch) error {
	path, err := ref.TopicPath()
	if err != nil {
		return err
	}
	// merge write: videoUrl is only touched when a new upload produced one
	data := map[string]interface{}{
		fldTitle:       patch.Title,
		fldDescription: patch.Description,
		fldUpdatedAt:   patch.UpdatedAt,
	}
	if patch.VideoURL != nil {
		data[fldVideoURL] = *patch.VideoURL
	}
	return errors.Wrap(repo.store.Set(ctx, path, data, true /* merge */), "updating topic")
}

func (repo *repository) DeleteTopic(ctx context.Context, ref catalog.Ref) error {
	path, err := ref.TopicPath()
	if err != nil {
		return err
	}
	return errors.Wrap(repo.store.Delete(ctx, path), "deleting topic")
}

// Exams

func (repo *repository) CreateExam(ctx context.Context, ref catalog.Ref, exam catalog.Exam) (catalog.Exam, error) {
	path, err := ref.ExamPath()
	if err != nil {
		return catalog.Exam{}, err
	}
	if err := repo.store.Set(ctx, path, examToMap(exam), false); err != nil {
		return catalog.Exam{}, errors.Wrap(err, "creating exam")
	}
	exam.ID = ref.Exam
	return exam, nil
}

func (repo *repository) ListExams(ctx context.Context, ref catalog.Ref) ([]catalog.Exam, error) {
	col, err := ref.Exams()
	if err != nil {
		return nil, err
	}
	docs, err := repo.store.List(ctx, col)
	if err != nil {
		return nil, errors.Wrap(err, "listing exams")
	}

	exams := make([]catalog.Exam, 0, len(docs))
	for _, doc := range docs {
		exam, err := examFromMap(doc.ID, doc.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding exam %q", doc.ID)
		}
		exams = append(exams, exam)
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].CreatedAt.Before(exams[j].CreatedAt) })
	return exams, nil
}

func (repo *repository) GetExam(ctx context.Context, ref catalog.Ref) (catalog.Exam, error) {
	path, err := ref.ExamPath()
	if err != nil {
		return catalog.Exam{}, err
	}
	data, err := repo.store.Get(ctx, path)
	if err != nil {
		if errors.Cause(err) == docstore.ErrNotFound {
			return catalog.Exam{}, catalog.ErrNotFound
		}
		return catalog.Exam{}, errors.Wrap(err, "getting exam")
	}
	return examFromMap(ref.Exam, data)
}

func (repo *repository) UpdateExam(ctx context.Context, ref catalog.Ref, patch catalog.ExamPatch) error {
	path, err := ref.ExamPath()
	if err != nil {
		return err
	}
	data := map[string]interface{}{fldTitle: patch.Title, fldUpdatedAt: patch.UpdatedAt}
	return errors.Wrap(repo.store.Set(ctx, path, data, true /* merge */), "updating exam")
}

func (repo *repository) DeleteExam(ctx context.Context, ref catalog.Ref) error {
	path, err := ref.ExamPath()
	if err != nil {
		return err
	}
	// drop the question subcollection first; subcollections do not cascade
	if err := repo.deleteAllQuestions(ctx, ref); err != nil {
		return err
	}
	return errors.Wrap(repo.store.Delete(ctx, path), "deleting exam")
}

// Questions

func (repo *repository) ListQuestions(ctx context.Context, ref catalog.Ref) ([]catalog.Question, error) {
	col, err := ref.Questions()
	if err != nil {
		return nil, err
	}
	docs, err := repo.store.List(ctx, col)
	if err != nil {
		return nil, errors.Wrap(err, "listing questions")
	}

	questions := make([]catalog.Question, 0, len(docs))
	for _, doc := range docs {
		q, err := questionFromMap(doc.ID, doc.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding question %q", doc.ID)
		}
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })
	return questions, nil
}

// ReplaceQuestions deletes every existing question under the exam, then writes
// the given list. Deletes and writes commit as two separate batches; a reader
// in between can observe a partially-deleted question set.
func (repo *repository) ReplaceQuestions(ctx context.Context, ref catalog.Ref, questions []catalog.Question) error {
	if err := repo.deleteAllQuestions(ctx, ref); err != nil {
		return err
	}

	col, err := ref.Questions()
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	writes := repo.store.Batch()
	for i := range questions {
		questions[i].ID = writes.Create(col, questionToMap(questions[i]))
	}
	return errors.Wrap(writes.Commit(ctx), "writing questions")
}

func (repo *repository) deleteAllQuestions(ctx context.Context, ref catalog.Ref) error {
	col, err := ref.Questions()
	if err != nil {
		return err
	}
	docs, err := repo.store.List(ctx, col)
	if err != nil {
		return errors.Wrap(err, "listing questions for delete")
	}
	if len(docs) == 0 {
		return nil
	}

	deletes := repo.store.Batch()
	for _, doc := range docs {
		deletes.Delete(append(append([]string{}, col...), doc.ID))
	}
	return errors.Wrap(deletes.Commit(ctx), "deleting questions")
}
