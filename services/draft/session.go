package draft

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/models/blog"
	"travel-agency/models/tour"
	"travel-agency/services/slug"
)

// State of a drafting session.
type State int

const (
	Prompting State = iota
	Reviewing
	Committed
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Reviewing:
		return "reviewing"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

type machine struct {
	state State
}

func (m *machine) require(want State) error {
	if m.state != want {
		return fmt.Errorf("%w: session is %s", ErrInvalidState, m.state)
	}
	return nil
}

func (m *machine) State() State {
	return m.state
}

// TourSession walks one operator through prompting, reviewing and saving a
// tour draft. It is not safe for concurrent use.
type TourSession struct {
	machine
	pipeline   *Pipeline
	userID     string
	request    TourRequest
	result     *TourResult
	slugEdited bool
	saved      *tour.Tour
}

func (p *Pipeline) NewTourSession(userID string) *TourSession {
	return &TourSession{pipeline: p, userID: userID}
}

// Request returns the last prompt and hints, kept across failures.
func (s *TourSession) Request() TourRequest { return s.request }

// Draft returns the draft under review, or nil outside Reviewing.
func (s *TourSession) Draft() *TourDraft {
	if s.state != Reviewing || s.result == nil {
		return nil
	}
	return &s.result.Tour
}

func (s *TourSession) Result() *TourResult { return s.result }

// Saved returns the record written by Commit.
func (s *TourSession) Saved() *tour.Tour { return s.saved }

// Generate asks for a draft. On failure the session stays in Prompting with
// the request intact.
func (s *TourSession) Generate(ctx context.Context, req TourRequest) error {
	if err := s.require(Prompting); err != nil {
		return err
	}
	s.request = req
	result, err := s.pipeline.GenerateTour(ctx, s.userID, req)
	if err != nil {
		return err
	}
	s.result = result
	s.slugEdited = false
	s.state = Reviewing
	return nil
}

// SetTitle edits the title. Until the slug is edited by hand it follows the
// title.
func (s *TourSession) SetTitle(title string) error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	s.result.Tour.Title = title
	if !s.slugEdited {
		s.result.Tour.Slug = slug.Base(title)
	}
	return nil
}

func (s *TourSession) SetSlug(v string) error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	s.result.Tour.Slug = v
	s.slugEdited = true
	return nil
}

// Edit applies fn to the draft under review.
func (s *TourSession) Edit(fn func(d *TourDraft)) error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	fn(&s.result.Tour)
	return nil
}

// Discard drops the draft and returns to Prompting.
func (s *TourSession) Discard() error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	s.result = nil
	s.state = Prompting
	return nil
}

// Regenerate drops the draft and returns to Prompting with the previous
// request kept for editing.
func (s *TourSession) Regenerate() error {
	return s.Discard()
}

// Commit saves the draft. A failed save keeps the session in Reviewing with
// every edit intact, except a partial save: the tour row exists, so the
// session ends.
func (s *TourSession) Commit(ctx context.Context, publish bool) (*tour.Tour, error) {
	if err := s.require(Reviewing); err != nil {
		return nil, err
	}
	saved, err := s.pipeline.CommitTour(ctx, s.userID, s.result.Tour, publish)
	var partial *PartialCommitError
	if errors.As(err, &partial) {
		s.saved = saved
		s.state = Committed
		return saved, err
	}
	if err != nil {
		return nil, err
	}
	s.saved = saved
	s.state = Committed
	return saved, nil
}

// BlogSession is the blog counterpart of TourSession.
type BlogSession struct {
	machine
	pipeline   *Pipeline
	userID     string
	request    BlogRequest
	result     *BlogResult
	slugEdited bool
	saved      *blog.BlogPost
}

func (p *Pipeline) NewBlogSession(userID string) *BlogSession {
	return &BlogSession{pipeline: p, userID: userID}
}

func (s *BlogSession) Request() BlogRequest { return s.request }

func (s *BlogSession) Draft() *BlogDraft {
	if s.state != Reviewing || s.result == nil {
		return nil
	}
	return &s.result.Blog
}

func (s *BlogSession) Saved() *blog.BlogPost { return s.saved }

func (s *BlogSession) Generate(ctx context.Context, req BlogRequest) error {
	if err := s.require(Prompting); err != nil {
		return err
	}
	s.request = req
	result, err := s.pipeline.GenerateBlog(ctx, s.userID, req)
	if err != nil {
		return err
	}
	s.result = result
	s.slugEdited = false
	s.state = Reviewing
	return nil
}

func (s *BlogSession) SetTitle(title string) error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	s.result.Blog.Title = title
	if !s.slugEdited {
		s.result.Blog.Slug = slug.Base(title)
	}
	return nil
}

func (s *BlogSession) SetSlug(v string) error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	s.result.Blog.Slug = v
	s.slugEdited = true
	return nil
}

func (s *BlogSession) Edit(fn func(d *BlogDraft)) error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	fn(&s.result.Blog)
	return nil
}

func (s *BlogSession) Discard() error {
	if err := s.require(Reviewing); err != nil {
		return err
	}
	s.result = nil
	s.state = Prompting
	return nil
}

func (s *BlogSession) Regenerate() error {
	return s.Discard()
}

func (s *BlogSession) Commit(ctx context.Context, publish bool) (*blog.BlogPost, error) {
	if err := s.require(Reviewing); err != nil {
		return nil, err
	}
	saved, err := s.pipeline.CommitBlog(ctx, s.userID, s.result.Blog, publish)
	if err != nil {
		return nil, err
	}
	s.saved = saved
	s.state = Committed
	return saved, nil
}
