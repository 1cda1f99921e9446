package main

import "github.com/bytebaker/stego/cmd/stego"

func main() { stego.Execute() }
