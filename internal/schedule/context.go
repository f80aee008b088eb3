package schedule

// Query types recorded in the conversation context. Follow-up questions
// are only honored after queries that pinned down a concrete class.
const (
	QueryCurrentClass = "current_class"
	QueryNextClass    = "next_class"
	QueryAfterClass   = "after_class"
	QueryNthClass     = "nth_class"
	QueryDaySchedule  = "day_schedule"
)

// ClassInfo pins down one class occurrence for follow-up questions.
// Period holds the slot's period for time-based queries but the
// 1-based position for ordinal queries.
type ClassInfo struct {
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
	Period    int    `json:"period"`
	Day       string `json:"day"`
}

// Context carries conversation state between queries. Clients replay it
// with each request; the zero value is a fresh conversation.
type Context struct {
	LastClass     *ClassInfo `json:"last_class"`
	LastQueryType string     `json:"last_query_type,omitempty"`
	LastDay       string     `json:"last_day,omitempty"`
	LastResponse  string     `json:"last_response,omitempty"`
	GreetingDone  bool       `json:"greeting_done"`
}

// Update records the outcome of a query. LastClass, LastQueryType and
// LastResponse are always overwritten; LastDay only moves when the new
// class carries a day, so a "no more classes" answer keeps the day the
// user was last talking about.
func (c *Context) Update(class *ClassInfo, queryType, response string) {
	c.LastClass = class
	c.LastQueryType = queryType
	if class != nil && class.Day != "" {
		c.LastDay = class.Day
	}
	c.LastResponse = response
}

// canFollowUp reports whether the context pins down a class that a
// follow-up question can chain from.
func (c *Context) canFollowUp() bool {
	if c.LastClass == nil {
		return false
	}
	switch c.LastQueryType {
	case QueryCurrentClass, QueryNextClass, QueryAfterClass, QueryNthClass:
		return true
	}
	return false
}
