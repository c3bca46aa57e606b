package main

import (
	"github.com/leighmacdonald/tracks/cmd"
	_ "github.com/leighmacdonald/tracks/store/http"
	_ "github.com/leighmacdonald/tracks/store/memory"
	_ "github.com/leighmacdonald/tracks/store/mysql"
	_ "github.com/leighmacdonald/tracks/store/postgres"
	_ "github.com/leighmacdonald/tracks/store/redis"
	_ "github.com/leighmacdonald/tracks/store/sqlite"
)

func main() {
	cmd.Execute()
}
