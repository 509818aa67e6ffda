// @title Eventhub API
// @version 1.0
// @description Event planning backend with realtime attendee counts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import "eventhub/cmd/server/cmd"

func main() {
	cmd.Execute()
}
