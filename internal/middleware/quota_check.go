package middleware

import (
	"net/http"
)

// QuotaCheck rejects generation requests from users who already hit their
// grade's daily limit. Runs after JWTAuth; the debit itself happens later in
// the orchestrator, so a rejected request charges nothing.
func QuotaCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromCtx(r.Context())
		if user == nil {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		if user.DailyCount >= user.MaxDailyCount {
			http.Error(w, `{"error":"daily generation limit reached"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
