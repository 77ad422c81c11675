package routes

import (
	"Quadra/controllers"
	"Quadra/middleware"
	"Quadra/services/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/auth/registrar", controllers.Registrar(db))
	api.POST("/auth/login", controllers.Login(db))

	// Routes that require authentication
	autenticado := api.Group("/")
	autenticado.Use(middleware.AuthRequired(db))
	if redisClient != nil {
		autenticado.Use(middleware.RateLimit(redisClient))
	}
	{
		autenticado.POST("/auth/refresh", controllers.Refresh())
		autenticado.GET("/auth/me", controllers.Me())

		usuarios := autenticado.Group("/usuarios")
		{
			usuarios.GET("", controllers.ListarUsuarios(db))
			usuarios.GET("/ranking", controllers.RankingUsuarios(db, redisClient))
			usuarios.GET("/tipo/:tipo", controllers.ListarUsuariosPorTipo(db))
			usuarios.GET("/categorias-permitidas", controllers.CategoriasPermitidas())
			usuarios.GET("/:id", controllers.ObterUsuario(db))
			usuarios.PUT("/:id", controllers.AtualizarUsuario(db))
			usuarios.DELETE("/:id", controllers.DesativarUsuario(db))
		}

		partidas := autenticado.Group("/partidas")
		{
			partidas.POST("", controllers.CriarPartida(db))
			partidas.GET("", controllers.ListarPartidas(db))
			partidas.GET("/proximas", controllers.ListarProximasPartidas(db))
			partidas.GET("/minhas", controllers.ListarMinhasPartidas(db))
			partidas.GET("/participando", controllers.ListarPartidasParticipando(db))
			partidas.GET("/tipo/:tipo", controllers.ListarPartidasPorTipo(db))
			partidas.GET("/:id", controllers.ObterPartida(db))
			partidas.PUT("/:id", controllers.AtualizarPartida(db))
			partidas.PATCH("/:id/ativar", controllers.AtivarPartida(db))
			partidas.PATCH("/:id/desativar", controllers.DesativarPartida(db))
			partidas.POST("/:id/participar", controllers.ParticiparPartida(db))
			partidas.DELETE("/:id/participar", controllers.SairPartida(db))
			partidas.DELETE("/:id/participantes/:usuario_id", controllers.RemoverParticipante(db))
			partidas.POST("/:id/confirmar", controllers.ConfirmarPresenca(db))
			partidas.POST("/:id/cancelar-confirmacao", controllers.CancelarConfirmacao(db))
			partidas.PATCH("/:id/finalizar", controllers.FinalizarPartida(db))
		}

		convites := autenticado.Group("/convites")
		{
			convites.POST("", controllers.EnviarConvite(db))
			convites.GET("/enviados", controllers.ConvitesEnviados(db))
			convites.GET("/recebidos", controllers.ConvitesRecebidos(db))
			convites.GET("/pendentes", controllers.ConvitesPendentes(db))
			convites.POST("/expirar-antigos", controllers.ExpirarConvitesAntigos(db))
			convites.GET("/partida/:id", controllers.ConvitesDaPartida(db))
			convites.GET("/:id", controllers.ObterConvite(db))
			convites.PUT("/:id/aceitar", controllers.AceitarConvite(db))
			convites.PUT("/:id/recusar", controllers.RecusarConvite(db))
			convites.DELETE("/:id", controllers.CancelarConvite(db))
		}

		equipes := autenticado.Group("/equipes")
		{
			equipes.POST("", controllers.CriarEquipe(db))
			equipes.GET("", controllers.ListarEquipes(db))
			equipes.GET("/ranking", controllers.RankingEquipes(db))
			equipes.GET("/:id", controllers.ObterEquipe(db))
			equipes.PUT("/:id", controllers.AtualizarEquipe(db))
			equipes.POST("/:id/membros/:usuario_id", controllers.AdicionarMembroEquipe(db))
			equipes.DELETE("/:id/membros/:usuario_id", controllers.RemoverMembroEquipe(db))
		}
	}
}
