package main

import "github.com/trivytui/trivy-tui/cmd/trivytui"

func main() { trivytui.Execute() }
