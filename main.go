package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/gotp/internal/app"
)

func main() {
	application := app.New()
	wait := application.Start() // blocks below until a termination signal arrives

	<-wait

	// Give in-flight requests and pending event publishes a bounded window.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
