package router

import (
	"github.com/gin-gonic/gin"

	authhandler "blog_backend/internal/feature/auth/transport/handler"
	gamehandler "blog_backend/internal/feature/games/transport/handler"
	posthandler "blog_backend/internal/feature/posts/transport/handler"
	suggesthandler "blog_backend/internal/feature/tagsuggest/transport/handler"
	"blog_backend/internal/platform/http/handler"
	jwtmw "blog_backend/internal/platform/jwt"
)

// NewRouter assembles the HTTP routes. suggest may be nil when the AI
// clients are not configured; its routes are simply absent then.
func NewRouter(auth *authhandler.AuthHandler, posts *posthandler.PostHandler,
	games *gamehandler.GameHandler, suggest *suggesthandler.TagSuggestHandler,
	jwtSecret, uploadDir string) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/users/register", auth.Register)
	// ログイン（JWT 発行）
	r.POST("/users/login", auth.Login)

	// アップロード画像の静的配信
	r.Static("/uploads", uploadDir)

	// ゲームカタログ（認証なしの公開リソース）
	r.GET("/juegos", games.List)
	r.POST("/juegos", games.Create)
	r.POST("/juegos/many", games.CreateMany)
	r.DELETE("/juegos/:id", games.Delete)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	authRequired := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	authRequired.Use(jwtmw.AuthRequired(jwtSecret))
	{
		authRequired.GET("/posts", posts.List)
		authRequired.GET("/posts/:id", posts.Get)
		authRequired.POST("/posts", posts.Create)
		authRequired.POST("/posts/many", posts.CreateMany)
		authRequired.PUT("/posts/:id", posts.Update)
		authRequired.DELETE("/posts/:id", posts.Delete)

		if suggest != nil {
			authRequired.POST("/suggest/tags", suggest.SuggestTags)
			authRequired.POST("/suggest/summary", suggest.Summarize)
		}
	}

	return r
}
