package middleware

import (
	"github.com/gin-gonic/gin"
)

func Cors() gin.HandlerFunc {
	return func(context *gin.Context) {
		context.Header("Access-Control-Allow-Origin", "*") // You can replace * with the specified domain name
		context.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Token")
		context.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		context.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, Content-Disposition")
		if context.Request.Method == "OPTIONS" {
			context.Status(200)
			return
		}
		context.Next()
	}
}
