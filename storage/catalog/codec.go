package catalogrepo

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/catalog"
)

// Store document field names. Documents are decoded through these helpers so
// that a malformed document is rejected at the adapter boundary instead of
// leaking an untyped bag into the domain.
const (
	fldName         = "name"
	fldTitle        = "title"
	fldDescription  = "description"
	fldVideoURL     = "videoUrl"
	fldQuestionHTML = "questionHTML"
	fldAnswerHTML   = "answerHTML"
	fldOrder        = "order"
	fldCreatedAt    = "createdAt"
	fldUpdatedAt    = "updatedAt"
)

var errBadSchema = errors.New("malformed document")

func strField(data map[string]interface{}, fld string, required bool) (string, error) {
	val, ok := data[fld]
	if !ok || val == nil {
		if required {
			return "", errors.Wrapf(errBadSchema, "missing field %q", fld)
		}
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", errors.Wrapf(errBadSchema, "field %q is not a string", fld)
	}
	return s, nil
}

func intField(data map[string]interface{}, fld string) (int, error) {
	val, ok := data[fld]
	if !ok || val == nil {
		return 0, errors.Wrapf(errBadSchema, "missing field %q", fld)
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64: // Firestore integers
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, errors.Wrapf(errBadSchema, "field %q is not an integer", fld)
}

func timeField(data map[string]interface{}, fld string) time.Time {
	if val, ok := data[fld]; ok {
		if t, ok := val.(time.Time); ok {
			return t.UTC()
		}
	}
	return time.Time{}
}

func subjectToMap(sub catalog.Subject) map[string]interface{} {
	return map[string]interface{}{
		fldName:      sub.Name,
		fldCreatedAt: sub.CreatedAt,
		fldUpdatedAt: sub.UpdatedAt,
	}
}

func subjectFromMap(id string, data map[string]interface{}) (catalog.Subject, error) {
	name, err := strField(data, fldName, true)
	if err != nil {
		return catalog.Subject{}, err
	}
	return catalog.Subject{
		ID:        id,
		Name:      name,
		CreatedAt: timeField(data, fldCreatedAt),
		UpdatedAt: timeField(data, fldUpdatedAt),
	}, nil
}

func topicToMap(topic catalog.Topic) map[string]interface{} {
	data := map[string]interface{}{
		fldTitle:       topic.Title,
		fldDescription: topic.Description,
		fldCreatedAt:   topic.CreatedAt,
		fldUpdatedAt:   topic.UpdatedAt,
	}
	if topic.VideoURL != "" {
		data[fldVideoURL] = topic.VideoURL
	}
	return data
}

func topicFromMap(id string, data map[string]interface{}) (catalog.Topic, error) {
	title, err := strField(data, fldTitle, true)
	if err != nil {
		return catalog.Topic{}, err
	}
	desc, err := strField(data, fldDescription, false)
	if err != nil {
		return catalog.Topic{}, err
	}
	videoURL, err := strField(data, fldVideoURL, false)
	if err != nil {
		return catalog.Topic{}, err
	}
	return catalog.Topic{
		ID:          id,
		Title:       title,
		Description: desc,
		VideoURL:    videoURL,
		CreatedAt:   timeField(data, fldCreatedAt),
		UpdatedAt:   timeField(data, fldUpdatedAt),
	}, nil
}

func examToMap(exam catalog.Exam) map[string]interface{} {
	return map[string]interface{}{
		fldTitle:     exam.Title,
		fldCreatedAt: exam.CreatedAt,
		fldUpdatedAt: exam.UpdatedAt,
	}
}

func examFromMap(id string, data map[string]interface{}) (catalog.Exam, error) {
	title, err := strField(data, fldTitle, true)
	if err != nil {
		return catalog.Exam{}, err
	}
	return catalog.Exam{
		ID:        id,
		Title:     title,
		CreatedAt: timeField(data, fldCreatedAt),
		UpdatedAt: timeField(data, fldUpdatedAt),
	}, nil
}

func questionToMap(q catalog.Question) map[string]interface{} {
	data := map[string]interface{}{
		fldQuestionHTML: q.QuestionHTML,
		fldOrder:        q.Order,
		fldCreatedAt:    q.CreatedAt,
		fldUpdatedAt:    q.UpdatedAt,
	}
	if q.AnswerHTML != "" {
		data[fldAnswerHTML] = q.AnswerHTML
	}
	return data
}

func questionFromMap(id string, data map[string]interface{}) (catalog.Question, error) {
	questionHTML, err := strField(data, fldQuestionHTML, true)
	if err != nil {
		return catalog.Question{}, err
	}
	answerHTML, err := strField(data, fldAnswerHTML, false)
	if err != nil {
		return catalog.Question{}, err
	}
	order, err := intField(data, fldOrder)
	if err != nil {
		return catalog.Question{}, err
	}
	return catalog.Question{
		ID:           id,
		QuestionHTML: questionHTML,
		AnswerHTML:   answerHTML,
		Order:        order,
		CreatedAt:    timeField(data, fldCreatedAt),
		UpdatedAt:    timeField(data, fldUpdatedAt),
	}, nil
}
