package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vathanak/portfolio/internal/mailer"
)

type contactForm struct {
	FromName  string `form:"from_name" binding:"required,max=200"`
	FromEmail string `form:"from_email" binding:"required,email,max=320"`
	Message   string `form:"message" binding:"required,max=5000"`
}

type toast struct {
	Title       string
	Description string
	Destructive bool
}

func (s *Server) handleContactPage(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "contact.html", p.Nav.Contact, gin.H{
		"form": contactForm{},
	})
}

// handleContactForm returns just the form, for HTMX swaps.
func (s *Server) handleContactForm(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "contact-form.html", p.Nav.Contact, gin.H{
		"form": contactForm{},
	})
}

// handleContactSubmit forwards the message to the profile's address. HTMX
// requests get the form fragment back with a toast; plain posts get the whole
// page. On failure the typed values are kept so the visitor can retry.
func (s *Server) handleContactSubmit(c *gin.Context) {
	text := textFor(accessorFrom(c).Language())

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		form = contactForm{
			FromName:  c.PostForm("from_name"),
			FromEmail: c.PostForm("from_email"),
			Message:   c.PostForm("message"),
		}
		s.contactResult(c, http.StatusUnprocessableEntity, form, toast{
			Title: text.ErrorTitle, Description: text.InvalidForm, Destructive: true,
		})
		return
	}

	st := accessorFrom(c).State()
	if st.Profile == nil {
		s.contactResult(c, http.StatusServiceUnavailable, form, toast{
			Title: text.ErrorTitle, Description: text.Unavailable, Destructive: true,
		})
		return
	}

	msg := mailer.Sanitize(mailer.Message{
		ToEmail:   st.Profile.Email,
		FromName:  form.FromName,
		FromEmail: form.FromEmail,
		Body:      form.Message,
	})
	if err := s.send(c, msg); err != nil {
		s.logger.Error("error sending contact email",
			zap.String("from_email", msg.FromEmail), zap.Error(err))
		s.contactResult(c, http.StatusBadGateway, form, toast{
			Title: text.ErrorTitle, Description: text.SendFailed, Destructive: true,
		})
		return
	}

	s.logger.Info("contact email sent", zap.String("from_name", msg.FromName))
	s.contactResult(c, http.StatusOK, contactForm{}, toast{
		Title: text.SuccessTitle, Description: st.Profile.Buttons.Success,
	})
}

func (s *Server) send(c *gin.Context, msg mailer.Message) error {
	if s.sender == nil {
		return mailer.ErrNotConfigured
	}
	return s.sender.Send(c.Request.Context(), msg)
}

func (s *Server) contactResult(c *gin.Context, status int, form contactForm, t toast) {
	extra := gin.H{"form": form, "toast": t}
	if isHTMX(c) {
		// HTMX only swaps 2xx responses.
		s.render(c, http.StatusOK, "contact-form.html", "", extra)
		return
	}
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, status, "contact.html", p.Nav.Contact, extra)
}
