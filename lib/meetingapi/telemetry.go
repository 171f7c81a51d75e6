package meetingapi

import (
	"jwmeeting-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("jwmeeting.lib.meetingapi")

// SetRestyInstrumentOutput dumps every http exchange of this client to
// the given output when debug logging is enabled.
func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.http, tracer, out)
}
