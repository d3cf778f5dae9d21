package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/session"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	e := s.ensureSession(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.renderCurrent(w, r, e)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	e, ok := s.guard(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	e.rollNumber = r.PostFormValue("rollNumber")
	e.name = r.PostFormValue("name")
	state, err := e.flow.Login(r.Context(), e.rollNumber, e.name)
	if err != nil {
		// A failed login drops any form held from an earlier login.
		e.ctrl = nil
		e.submitted = nil
		e.errors = append(e.errors, session.UserMessage(err))
		s.redirect(w, r)
		return
	}

	ctrl, err := controller.New(*state.Form,
		controller.WithSink(s.sink),
		controller.WithLogger(s.logger),
		controller.WithClock(s.now),
	)
	if err != nil {
		s.logger.Warn("form rejected", zap.Error(err))
		e.flow.Logout()
		e.errors = append(e.errors, session.MessageFetchFailed)
		s.redirect(w, r)
		return
	}
	e.ctrl = ctrl
	e.submitted = nil
	s.redirect(w, r)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	e, ok := s.guard(w, r)
	if !ok {
		return
	}
	defer e.mu.Unlock()

	if e.ctrl == nil || e.submitted != nil {
		s.redirect(w, r)
		return
	}

	state := e.ctrl.State()
	if r.PostForm.Get(SectionField) != strconv.Itoa(state.Index) {
		e.errors = append(e.errors, MessageStalePage)
		s.redirect(w, r)
		return
	}
	if err := applySection(e.ctrl, r.PostForm); err != nil {
		s.logger.Warn("apply section", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		return
	}

	switch r.PostForm.Get(ActionField) {
	case ActionNext:
		if _, err := e.ctrl.Next(); err != nil && !errors.Is(err, controller.ErrNoNextSection) {
			s.logger.Warn("next section", zap.Error(err))
		}
	case ActionPrevious:
		if err := e.ctrl.Previous(); err != nil {
			s.logger.Warn("previous section", zap.Error(err))
		}
	case ActionSubmit:
		submission, submitted, err := e.ctrl.Submit(r.Context())
		if submitted {
			e.submitted = &submission
			if err != nil {
				s.logger.Error("submission delivery failed", zap.Error(err))
				e.errors = append(e.errors, MessageDeliveryError)
			} else {
				e.notices = append(e.notices, NoticeSubmitted)
			}
		} else if err != nil && !errors.Is(err, controller.ErrNotLastSection) {
			s.logger.Warn("submit", zap.Error(err))
		}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	s.redirect(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	e, ok := s.guard(w, r)
	if !ok {
		return
	}
	e.reset()
	e.mu.Unlock()

	if cookie, err := r.Cookie(s.cookieName); err == nil {
		s.sessions.delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	s.redirect(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
	})
}

// applySection copies the posted controls of the active section into the
// controller. Checkbox groups are diffed option by option; values that are
// not options of the field are ignored.
func applySection(ctrl *controller.Controller, form url.Values) error {
	for _, field := range ctrl.Section().Fields {
		if field.Type.ValueKind() == model.KindSet {
			posted := form[field.FieldID]
			for _, opt := range field.Options {
				if err := ctrl.Toggle(field.FieldID, opt.Value, slices.Contains(posted, opt.Value)); err != nil {
					return err
				}
			}
			continue
		}
		if err := ctrl.Change(field.FieldID, form.Get(field.FieldID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) renderCurrent(w http.ResponseWriter, r *http.Request, e *entry) {
	errs, notices := e.flash()
	hidden := render.MergeHiddenFields(nil, render.CSRFToken(CSRFField, e.csrf))

	var (
		body []byte
		err  error
	)
	switch {
	case e.ctrl != nil && e.submitted != nil:
		body, err = s.renderer.RenderDone(r.Context(), html.DoneView{
			Form:         e.ctrl.Form(),
			Values:       e.submitted.Values,
			LogoutAction: "/logout",
			Errors:       errs,
			Notices:      notices,
			Hidden:       hidden,
			Theme:        s.theme,
		})
	case e.ctrl != nil:
		form := e.ctrl.Form()
		state := e.ctrl.State()
		body, err = s.renderer.RenderSection(r.Context(), form, render.RenderOptions{
			Index:      state.Index,
			Values:     state.Values,
			Errors:     state.Errors,
			FormErrors: errs,
			Notices:    notices,
			Hidden: render.MergeHiddenFields(hidden,
				render.SectionField(state.Index),
				render.VersionField("version", form.Version),
			),
			Action: "/form",
			Theme:  s.theme,
		})
	default:
		body, err = s.renderer.RenderLogin(r.Context(), html.LoginView{
			Action:     "/login",
			RollNumber: e.rollNumber,
			Name:       e.name,
			Errors:     errs,
			Notices:    notices,
			Hidden:     hidden,
			Theme:      s.theme,
		})
	}
	if err != nil {
		s.logger.Error("render page", zap.Error(err), zap.String("request_id", RequestIDFrom(r.Context())))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// ensureSession returns the caller's session, starting a new one when the
// cookie is missing or expired.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) *entry {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		if e, ok := s.sessions.get(cookie.Value); ok {
			return e
		}
	}
	if removed := s.sessions.sweep(); removed > 0 {
		s.logger.Debug("expired sessions removed", zap.Int("count", removed))
	}
	id, e := s.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return e
}

// guard resolves the session of a POST and checks its CSRF token. On
// success the entry is returned locked.
func (s *Server) guard(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		s.redirect(w, r)
		return nil, false
	}
	e, ok := s.sessions.get(cookie.Value)
	if !ok {
		s.redirect(w, r)
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}
	e.mu.Lock()
	if subtle.ConstantTimeCompare([]byte(r.PostForm.Get(CSRFField)), []byte(e.csrf)) != 1 {
		e.mu.Unlock()
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return nil, false
	}
	return e, true
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
