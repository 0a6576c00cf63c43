package form

type renderedField struct {
	status  Status
	message string
}

// rendered is what the presenter currently shows.
type rendered struct {
	fields map[string]renderedField
	submit *bool
}

// render pushes the differences between the current state and what the
// presenter last received. The snapshot is taken while holding renderMu, so
// concurrent renders reach the presenter in state order.
func (c *Controller) render() {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.rendered.fields == nil {
		c.rendered.fields = make(map[string]renderedField, len(snap.Fields))
	}

	for _, id := range snap.Order {
		v := snap.Fields[id]
		next := renderedField{status: v.Status}
		if v.Feedback.Visible {
			next.message = v.Feedback.Message
		}
		prev, seen := c.rendered.fields[id]
		if !seen || prev.status != next.status {
			c.presenter.SetFieldStatus(id, next.status)
		}
		if (!seen && next.message != "") || (seen && prev.message != next.message) {
			c.presenter.ShowInlineError(id, next.message)
		}
		c.rendered.fields[id] = next
	}

	if c.rendered.submit == nil || *c.rendered.submit != snap.SubmitEnabled {
		enabled := snap.SubmitEnabled
		c.rendered.submit = &enabled
		c.presenter.SetSubmitEnabled(enabled)
	}
}

// present runs fn against the presenter, serialised with renders.
func (c *Controller) present(fn func(Presenter)) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	fn(c.presenter)
}
