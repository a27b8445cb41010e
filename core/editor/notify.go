package editor

import (
	"fmt"
	"net/mail"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
)

// notifyPublished emails the staff inbox after new content lands. Sending is
// fire-and-forget; a mail failure never fails the save.
func notifyPublished(mailSvc core.EmailService, log core.Logger, kind, title string, ref catalog.Ref) {
	if mailSvc == nil || core.Conf.StaffEmail.Address == "" {
		return
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{core.Conf.StaffEmail},
		Subject:      fmt.Sprintf("%s - New %s published: %s", core.Conf.AppName, kind, title),
		TemplateName: "content_published",
		TemplateData: map[string]interface{}{
			"Kind":  kind,
			"Title": title,
			"Path":  ref.String(),
		},
	}
	mailSvc.SendMessages(msg)
	log.Info(fmt.Sprintf("%s published: %s (%s)", kind, title, ref))
}
