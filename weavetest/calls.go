package weavetest

// calls counts the Check and Deliver invocations of a mock.
type calls struct {
	check   int
	deliver int
}

// CheckCallCount returns the number of Check calls.
func (c *calls) CheckCallCount() int { return c.check }

// DeliverCallCount returns the number of Deliver calls.
func (c *calls) DeliverCallCount() int { return c.deliver }

// CallCount returns the total number of calls.
func (c *calls) CallCount() int { return c.check + c.deliver }
