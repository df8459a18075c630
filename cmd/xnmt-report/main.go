// cmd/xnmt-report/main.go
package main

import (
	"github.com/qiangzhongwork/xnmt/internal/commands"
)

// main starts the xnmt-report CLI by delegating to the cobra root command.
func main() {
	commands.Execute()
}
