// Package docs provides generated OpenAPI documentation.
//
// Sommelier API
//
//	@title			Sommelier API
//	@version		1.0
//	@description	Wine pairing recommendations from configurable sommelier personas.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/sommelier
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/sommelier/serve.go -o ./swagger --parseDependency --parseInternal
