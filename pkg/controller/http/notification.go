package http

import (
	"net/http"

	"github.com/secmon-lab/kottos/pkg/service/notify"
	"github.com/secmon-lab/kottos/pkg/utils/errutil"
)

const defaultNotificationLimit = 20

func notificationsHandler(feed *notify.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{
			"notifications": feed.Recent(queryLimit(r, defaultNotificationLimit)),
		})
	}
}
