// Command hashpw prints the bcrypt hash of each password given on the
// command line. Useful for seeding users directly in the database during
// local development.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password> [<password>...]")
		os.Exit(1)
	}

	for _, password := range os.Args[1:] {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
	}
}
