package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	"gitlab.com/dirk.krummacker/customer-crm/internal/service"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	sqlDB, err := service.CreateDatabase(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	statements := 0
	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			db.MustExec(builder.String())
			statements++
			builder = strings.Builder{}
		}
	}
	if err := fileScanner.Err(); err != nil {
		panic(err)
	}
	fmt.Printf("executed %d statements from %s", statements, *filePtr)
	fmt.Println()
}
