package routes

import (
	"net/http"

	"ctfpractice/config"
	"ctfpractice/controllers"
	"ctfpractice/metrics"
	"ctfpractice/middlewares"
	"ctfpractice/services"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Metrics     *metrics.Metrics
	Tokens      *utils.TokenManager
	Submissions *services.SubmissionService
	Profiles    *services.ProfileService
	Challenges  *services.ChallengeService
	Leaderboard *services.LeaderboardService
	Contests    *services.ContestService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.CORSMiddleware(d.Config.CORS.AllowedOrigins),
		middlewares.RequestLogger(d.Logger),
		middlewares.Recovery(d.Logger),
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "Not found")
	})

	submissionCtl := controllers.NewSubmissionController(d.Submissions)
	profileCtl := controllers.NewProfileController(d.Profiles)
	challengeCtl := controllers.NewChallengeController(d.Challenges)
	leaderboardCtl := controllers.NewLeaderboardController(d.Leaderboard)
	contestCtl := controllers.NewContestController(d.Contests)

	keys := utils.NewServiceKeyVerifier(d.Config.Auth.ServiceKeyHash)
	identity := middlewares.IdentityMiddleware(d.Config.Auth, d.Tokens, keys)
	optionalIdentity := middlewares.OptionalIdentityMiddleware(d.Config.Auth, d.Tokens, keys)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/submissions", identity, submissionCtl.SubmitFlag)

		profileRoutes := apiV1.Group("/profiles")
		profileRoutes.Use(identity)
		{
			profileRoutes.POST("/sync", profileCtl.SyncProfile)
			profileRoutes.GET("/me", profileCtl.GetMe)
			profileRoutes.GET("/me/submissions", profileCtl.ListMySubmissions)
		}

		challengeRoutes := apiV1.Group("/challenges")
		challengeRoutes.Use(optionalIdentity)
		{
			challengeRoutes.GET("", challengeCtl.ListChallenges)
			challengeRoutes.GET("/:id", challengeCtl.GetChallengeDetail)
		}

		apiV1.GET("/leaderboard", leaderboardCtl.GetLeaderboard)
		apiV1.GET("/contests", contestCtl.ListContests)

		// Admin routes always require a session token with the admin role.
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(d.Tokens), middlewares.RoleAuthMiddleware(utils.RoleAdmin))
		{
			adminRoutes.POST("/challenges", challengeCtl.CreateChallenge)
			adminRoutes.PUT("/challenges/:id/active", challengeCtl.SetChallengeActive)
			adminRoutes.GET("/submissions", submissionCtl.ListSubmissionLog)
		}
	}

	return r
}
