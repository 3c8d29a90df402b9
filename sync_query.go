package gldraw

var occlusionKinds = [...]QueryKind{
	QuerySamplesPassed,
	QueryAnySamplesPassed,
	QueryAnySamplesPassedConservative,
}

// syncQueries starts and stops the queries of the draw. A query passed
// again by the next draw keeps running.
func (c *Context) syncQueries(p *DrawParameters) error {
	if err := c.syncOcclusionQuery(p.SamplesPassedQuery); err != nil {
		return err
	}
	if err := c.syncQuerySlot(QueryTimeElapsed, p.TimeElapsedQuery); err != nil {
		return err
	}
	if err := c.syncQuerySlot(QueryPrimitivesGenerated, p.PrimitivesGeneratedQuery); err != nil {
		return err
	}
	return c.syncQuerySlot(QueryTransformFeedbackPrimitivesWritten, p.TransformFeedbackPrimitivesWrittenQuery)
}

// syncOcclusionQuery drives the slot shared by the three sample kinds.
// Switching kinds ends the query of the other kinds first.
func (c *Context) syncOcclusionQuery(q *Query) error {
	for _, k := range occlusionKinds {
		if q != nil && k == q.Kind() {
			continue
		}
		c.endQuery(k)
	}
	if q == nil {
		return nil
	}
	return c.syncQuerySlot(q.Kind(), q)
}

func (c *Context) syncQuerySlot(kind QueryKind, q *Query) error {
	active := &c.state.Queries[kind]
	if q == nil {
		c.endQuery(kind)
		return nil
	}
	if *active == q.id {
		return nil
	}
	if q.used {
		return ErrWrongQueryOperation
	}
	c.endQuery(kind)
	c.dev.BeginQuery(kind, q.id)
	*active = q.id
	q.used = true
	return nil
}

func (c *Context) endQuery(kind QueryKind) {
	if c.state.Queries[kind] != 0 {
		c.dev.EndQuery(kind)
		c.state.Queries[kind] = 0
	}
}

// syncConditionalRender restarts the predicate when the query changes
// or when a wait is requested after a no-wait one. Waiting covers the
// no-wait case, so the reverse switch keeps the running predicate.
func (c *Context) syncConditionalRender(cr *ConditionalRendering) {
	cur := &c.state.ConditionalRender
	if cr == nil {
		if cur.Query != 0 {
			c.endConditionalRender()
			*cur = ConditionalRenderState{}
		}
		return
	}

	want := ConditionalRenderState{Query: cr.Query.id, Wait: cr.Wait, PerRegion: cr.PerRegion}
	if cur.Query != 0 {
		keep := cur.Query == want.Query && cur.PerRegion == want.PerRegion && (cur.Wait || !want.Wait)
		if keep {
			return
		}
		c.endConditionalRender()
	}
	if c.caps.coreConditionalRender() {
		c.dev.BeginConditionalRender(want.Query, want.Wait, want.PerRegion)
	} else {
		c.dev.BeginConditionalRenderNV(want.Query, want.Wait, want.PerRegion)
	}
	*cur = want
}

func (c *Context) endConditionalRender() {
	if c.caps.coreConditionalRender() {
		c.dev.EndConditionalRender()
	} else {
		c.dev.EndConditionalRenderNV()
	}
}
