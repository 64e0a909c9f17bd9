// Command marquee browses the movies now in theaters from the terminal.
package main

func main() {
	Execute()
}
