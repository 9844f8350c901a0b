package deps

import (
	"time"

	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/notify"
	"github.com/frzip09/absolute-time/internal/settings"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Store *settings.Store // settings persistence behind the coercion layer
	Hub   *notify.Hub     // settings-change fan-out to attached contexts
}
