package main

import (
	"os"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
	logsvc "github.com/trezcool/schoolms/services/logger"
	"github.com/trezcool/schoolms/storage/jsonfile"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf, err := core.NewConfig()
	if err != nil {
		logsvc.NewStdLogger(os.Stderr, "ADMIN : ", false).Error("loading config", err)
		return 1
	}
	logger := logsvc.NewLogger(os.Stderr, "ADMIN : ", conf)
	if rl, ok := logger.(*logsvc.RollbarLogger); ok {
		defer rl.Close()
	}

	cli := &commandLine{
		conf: conf,
		log:  logger,
		svc:  school.NewService(jsonfile.NewStore(conf.DataFile), logger),
		out:  os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			printError(os.Stderr, err)
		}
		return 1
	}
	return 0
}
