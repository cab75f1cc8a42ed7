package rest

import (
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// logFindError logs client errors at info level and everything else as an
// error.
func logFindError(err error, fields message.Fields) {
	logLevel := level.Error
	if errResp, ok := errors.Cause(err).(gimlet.ErrorResponse); ok && errResp.StatusCode < http.StatusInternalServerError {
		logLevel = level.Info
	}
	grip.Log(logLevel, message.WrapError(err, fields))
}
