package main

import (
	"context"

	"jwmeeting-backend/cmd/jwmeeting-cli/commands"
	"jwmeeting-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "jwmeeting-cli")
	telemetry.InitSlog(false)
	commands.ExecuteContext(context.Background())
}
