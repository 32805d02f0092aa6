// panscan is a panoramic spectrum scanner for SDR receivers
package main

func main() {
	Execute()
}
