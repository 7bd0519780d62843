package main

import (
	"context"

	"github.com/faizmokh/liftlog/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
