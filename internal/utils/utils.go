package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ParseDurationEnv accepts a Go duration ("10s", "5m") or a bare number of
// seconds. Surrounding quotes left over from .env files are ignored.
func ParseDurationEnv(s string) (time.Duration, error) {
	s = unquote(strings.TrimSpace(s))
	if s == "" {
		return 0, errors.New("empty duration")
	}

	var d time.Duration
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(n) * time.Second
	} else if d, err = time.ParseDuration(s); err != nil {
		return 0, fmt.Errorf("duration %q: want 10s, 5m or whole seconds", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q is negative", s)
	}
	return d, nil
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseRedisURL splits a redis:// or rediss:// URL into the fields of the
// REDIS_* settings.
func ParseRedisURL(raw string) (addr, password string, db int, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", 0, fmt.Errorf("redis url: %w", err)
	}
	switch {
	case u.Scheme != "redis" && u.Scheme != "rediss":
		return "", "", 0, fmt.Errorf("redis url: unsupported scheme %q", u.Scheme)
	case u.Host == "":
		return "", "", 0, errors.New("redis url: missing host")
	}
	password, _ = u.User.Password()
	if path := strings.Trim(u.Path, "/"); path != "" {
		if db, err = strconv.Atoi(path); err != nil || db < 0 {
			return "", "", 0, fmt.Errorf("redis url: bad database %q", path)
		}
	}
	return u.Host, password, db, nil
}

// SQLSTATE codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsPGUniqueViolation reports a unique constraint failure anywhere in err's chain.
func IsPGUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func IsPGForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

func pgCode(err error) string {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code
	}
	return ""
}

// BearerToken strips an optional "Bearer " scheme from an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
