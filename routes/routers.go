package routes

import (
	"context"
	"net/http"

	"restay/constants"
	"restay/controllers"
	middlewares "restay/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Controllers groups the request handlers mounted by SetupRoutes.
type Controllers struct {
	Auth     *controllers.AuthController
	Property *controllers.PropertyController
	Room     *controllers.RoomController
	User     *controllers.UserController
}

// SetupRoutes mounts the API. Reads are open to any authenticated role,
// property and room mutations need admin or manager, and account management
// is admin only.
func SetupRoutes(router *gin.Engine, ctl Controllers, cld *cloudinary.Cloudinary) {
	staff := []string{constants.RoleAdmin, constants.RoleManager, constants.RoleAccountant, constants.RoleViewer}
	editors := []string{constants.RoleAdmin, constants.RoleManager}

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())
	v1.Use(middlewares.ErrorHandler())

	v1.POST("/auth/login", ctl.Auth.Login)
	v1.POST("/auth/google", ctl.Auth.GoogleLogin)
	v1.DELETE("/auth/logout", ctl.Auth.Logout)
	v1.GET("/auth/session", ctl.Auth.Session)
	v1.GET("/profile", middlewares.AuthMiddleware(staff...), ctl.Auth.Profile)

	v1.GET("/pgs", middlewares.AuthMiddleware(staff...), ctl.Property.List)
	v1.GET("/pgs/search", middlewares.AuthMiddleware(staff...), ctl.Property.Search)
	v1.GET("/pgs/occupancy", middlewares.AuthMiddleware(staff...), ctl.Property.Occupancy)
	v1.GET("/pgs/:id", middlewares.AuthMiddleware(staff...), ctl.Property.Get)
	v1.POST("/pgs", middlewares.AuthMiddleware(editors...), ctl.Property.Create)
	v1.PUT("/pgs/:id", middlewares.AuthMiddleware(editors...), ctl.Property.Update)
	v1.DELETE("/pgs/:id", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.Property.Delete)
	v1.GET("/managers", middlewares.AuthMiddleware(editors...), ctl.Property.Managers)

	v1.GET("/rooms", middlewares.AuthMiddleware(staff...), ctl.Room.List)
	v1.GET("/rooms/:id", middlewares.AuthMiddleware(staff...), ctl.Room.Get)
	v1.POST("/rooms", middlewares.AuthMiddleware(editors...), ctl.Room.Create)
	v1.PUT("/rooms/:id", middlewares.AuthMiddleware(editors...), ctl.Room.Update)
	v1.DELETE("/rooms/:id", middlewares.AuthMiddleware(editors...), ctl.Room.Delete)
	v1.PUT("/rooms/bulk-capacity", middlewares.AuthMiddleware(editors...), ctl.Room.BulkCapacity)

	v1.GET("/users", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.List)
	v1.GET("/users/:id", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.Get)
	v1.POST("/users", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.Create)
	v1.PUT("/users/:id", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.Update)
	v1.DELETE("/users/:id", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.Delete)
	v1.POST("/users/assign-pg", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.AssignProperty)
	v1.POST("/users/unassign-pg", middlewares.AuthMiddleware(constants.RoleAdmin), ctl.User.UnassignProperty)

	v1.POST("/img/multi-upload", middlewares.AuthMiddleware(editors...), func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "pg-images"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload successful",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", middlewares.AuthMiddleware(editors...), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "pg-images"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload successful",
			"url":     resp.SecureURL,
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
