package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/constants"
	"github.com/yukikurage/workforce-api/internal/middleware"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/testutil"
	"gorm.io/gorm"
)

type apiTestEnv struct {
	db     *gorm.DB
	f      *testutil.Fixture
	svc    Services
	router *gin.Engine
	now    time.Time
}

func setupAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)

	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	entryRepo := repository.NewClockEntryRepository(db)
	exceptionRepo := repository.NewExceptionRepository(db)

	perms := services.NewPermissionService(orgRepo, userRepo)
	svc := Services{
		Auth:          services.NewAuthService(userRepo),
		Permissions:   perms,
		Clock:         services.NewClockService(perms, shiftRepo, entryRepo, exceptionRepo),
		Exceptions:    services.NewExceptionService(perms, shiftRepo, entryRepo, exceptionRepo),
		Schedule:      services.NewScheduleService(perms, userRepo, repository.NewProjectRepository(db), shiftRepo),
		Wellbeing:     services.NewWellbeingService(perms, userRepo, repository.NewMoodRepository(db)),
		Organizations: services.NewOrganizationService(perms, orgRepo),
	}

	env := &apiTestEnv{db: db, f: f, svc: svc, now: testutil.Monday.Add(9 * time.Hour)}

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.RequestLogger(zerolog.Nop()))
	RegisterRoutes(r, svc, func() time.Time { return env.now }, zerolog.Nop())
	env.router = r

	return env
}

func (env *apiTestEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *apiTestEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": testutil.Password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
