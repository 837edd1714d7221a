package http

import (
	"github.com/labstack/echo/v4"
	infra "github.com/learnhub/learnhub/internal/infrastructure"
)

func v1Endpoint(
	websocket *infra.Websocket,
	UserHandler *UserHandler,
	ProgressHandler *ProgressHandler,
	CourseHandler *CourseHandler,
	StatsHandler *StatsHandler,
	FeedHandler *FeedHandler,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/user",
				routes: []*route{
					{"POST", "/login", UserHandler.HandleSignIn, nil},
					{"PUT", "/sign-out", UserHandler.HandleSignOut, nil},
					{"POST", "/sign-up", UserHandler.HandleSignUp, nil},
					{"GET", "/exists", UserHandler.HandleUserExists, nil},
				},
			},
			{
				prefix:      "/progress",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"POST", "", ProgressHandler.HandleSaveProgress, nil},
					{"GET", "", ProgressHandler.HandleGetUserProgress, nil},
					{"GET", "/:lesson_id", ProgressHandler.HandleGetLessonProgress, nil},
				},
			},
			{
				prefix:      "/course",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "/:course_id/lessons", CourseHandler.HandleGetCourseLessons, nil},
					{"GET", "/:course_id/resume", CourseHandler.HandleGetResumeLesson, nil},
				},
			},
			{
				prefix:      "/stats",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "/watch-time", StatsHandler.HandleGetWatchTime, nil},
				},
			},
			{
				prefix:      "/ws",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware},
				routes: []*route{
					{"GET", "/feed", websocket.WithHeartbeat(FeedHandler.HandleProgressFeed), nil},
				},
			},
		},
	}
}
