package main

import "github.com/dbsmedya/redcompare/cmd/redcompare/cmd"

func main() {
	cmd.Execute()
}
