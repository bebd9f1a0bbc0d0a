package scatter

import "goscatter/internal/brush"

type resizeMsg struct {
	chart *Chart
}

type brushedMsg struct {
	chart *Chart
	event brush.Event
}
