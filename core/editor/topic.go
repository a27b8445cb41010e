package editor

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
)

// VideoUpload is a pending lesson video. Content is streamed to the blob
// store before any document write happens.
type VideoUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type TopicForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Video       *VideoUpload
}

func (f *TopicForm) Validate(validate *validator.Validate) error {
	f.Title = core.CleanString(f.Title)
	f.Description = core.CleanString(f.Description)
	return validate.Struct(f)
}

// TopicEditor creates and updates topics under one subject. A failed video
// upload aborts the save before any document is touched; an edit without a
// new video merges the patch and leaves the stored video URL as it is.
type TopicEditor struct {
	guard

	ref      catalog.Ref
	existing *catalog.Topic
	repo     catalog.Repository
	blobs    core.BlobStore
	mail     core.EmailService
	validate *validator.Validate
	log      core.Logger
}

func NewTopicEditor(
	repo catalog.Repository,
	blobs core.BlobStore,
	mail core.EmailService,
	validate *validator.Validate,
	log core.Logger,
) *TopicEditor {
	return &TopicEditor{repo: repo, blobs: blobs, mail: mail, validate: validate, log: log}
}

// Open prepares the editor for a new topic under ref when existing is nil,
// or for editing existing otherwise.
func (ed *TopicEditor) Open(ref catalog.Ref, existing *catalog.Topic) {
	ed.ref = ref
	ed.existing = existing
	ed.guard.open(existing != nil)
}

// Form returns the values the edit form should be prefilled with.
func (ed *TopicEditor) Form() TopicForm {
	if ed.existing == nil {
		return TopicForm{}
	}
	return TopicForm{Title: ed.existing.Title, Description: ed.existing.Description}
}

func (ed *TopicEditor) Cancel() { ed.guard.cancel() }

func (ed *TopicEditor) State() State { return ed.guard.current() }

func (ed *TopicEditor) Save(ctx context.Context, form TopicForm) (catalog.Topic, error) {
	gen, err := ed.beginSave()
	if err != nil {
		return catalog.Topic{}, err
	}
	topic, err := ed.save(ctx, form)
	ed.endSave(gen, err == nil)
	return topic, err
}

func (ed *TopicEditor) save(ctx context.Context, form TopicForm) (catalog.Topic, error) {
	if err := form.Validate(ed.validate); err != nil {
		return catalog.Topic{}, err
	}

	var videoURL *string
	if form.Video != nil {
		url, err := ed.uploadVideo(ctx, form.Video)
		if err != nil {
			return catalog.Topic{}, errors.Wrap(err, "uploading video")
		}
		videoURL = &url
	}

	now := time.Now().UTC()
	if ed.existing == nil {
		topic := catalog.Topic{
			Title:       form.Title,
			Description: form.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if videoURL != nil {
			topic.VideoURL = *videoURL
		}
		created, err := ed.repo.CreateTopic(ctx, ed.ref, topic)
		if err != nil {
			return catalog.Topic{}, errors.Wrap(err, "creating topic")
		}
		notifyPublished(ed.mail, ed.log, "Topic", created.Title, ed.ref)
		return created, nil
	}

	patch := catalog.TopicPatch{
		Title:       form.Title,
		Description: form.Description,
		VideoURL:    videoURL,
		UpdatedAt:   now,
	}
	ref := ed.ref
	ref.Topic = ed.existing.ID
	if err := ed.repo.UpdateTopic(ctx, ref, patch); err != nil {
		return catalog.Topic{}, errors.Wrap(err, "updating topic")
	}
	updated := *ed.existing
	updated.Title = patch.Title
	updated.Description = patch.Description
	updated.UpdatedAt = now
	if videoURL != nil {
		updated.VideoURL = *videoURL
	}
	return updated, nil
}

func (ed *TopicEditor) uploadVideo(ctx context.Context, video *VideoUpload) (string, error) {
	key := strings.Join([]string{
		"videos", ed.ref.Curriculum, ed.ref.Grade, ed.ref.Subject,
		uuid.NewString() + strings.ToLower(path.Ext(video.Filename)),
	}, "/")
	handle, err := ed.blobs.Upload(ctx, key, video.Content, video.ContentType)
	if err != nil {
		return "", err
	}
	return ed.blobs.DownloadURL(ctx, handle)
}
