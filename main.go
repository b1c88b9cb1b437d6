package main

import "github.com/avenir-oabms/relatorios-unificados/cmd"

func main() {
	cmd.Execute()
}
