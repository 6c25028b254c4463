package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"contactdesk/internal/client/api"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop, accepting commands to manage
// contacts and tasks through the API.
func repl(client *api.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("contactdesk> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, contacts, contact <id>, add-contact <id> <first> <last> <phone> <address...>, rm-contact <id>, tasks [project], rm-task <id>, refresh, exit")
		case "contacts":
			contacts, err := client.ListContacts()
			if err != nil {
				fmt.Println(err)
				continue
			}
			for _, c := range contacts {
				fmt.Printf("%-10s %s %s  %s\n", c.ContactID, c.FirstName, c.LastName, c.Phone)
			}
		case "contact":
			if len(args) < 2 {
				fmt.Println("Usage: contact <id>")
				continue
			}
			c, err := client.GetContact(args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			b, _ := json.MarshalIndent(c, "", "  ")
			fmt.Println(string(b))
		case "add-contact":
			if len(args) < 6 {
				fmt.Println("Usage: add-contact <id> <first> <last> <phone> <address...>")
				continue
			}
			c, err := client.CreateContact(api.Contact{
				ContactID: args[1],
				FirstName: args[2],
				LastName:  args[3],
				Phone:     args[4],
				Address:   strings.Join(args[5:], " "),
			})
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Created contact %s\n", c.ContactID)
		case "rm-contact":
			if len(args) < 2 {
				fmt.Println("Usage: rm-contact <id>")
				continue
			}
			if err := client.DeleteContact(args[1]); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Contact deleted")
		case "tasks":
			projectID := ""
			if len(args) > 1 {
				projectID = args[1]
			}
			tasks, err := client.ListTasks(projectID)
			if err != nil {
				fmt.Println(err)
				continue
			}
			for _, t := range tasks {
				fmt.Printf("%-10s %-12s %-20s %s\n", t.TaskID, t.Status, t.Name, t.DueDate)
			}
		case "rm-task":
			if len(args) < 2 {
				fmt.Println("Usage: rm-task <id>")
				continue
			}
			if err := client.DeleteTask(args[1]); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Task deleted")
		case "refresh":
			if err := client.Refresh(); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Session refreshed")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and dispatches to register, login, or the
// interactive shell.
func main() {
	var (
		cmd      string
		baseURL  string
		email    string
		password string
		name     string
		showVer  bool
	)

	flag.StringVar(&cmd, "cmd", "shell", "command: register | shell")
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&email, "email", "", "account email")
	flag.StringVar(&password, "password", "", "account password")
	flag.StringVar(&name, "name", "", "display name for registration")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("contactdesk client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if email == "" || password == "" {
		log.Fatal("please provide -email and -password")
	}

	client := api.New(baseURL)

	switch cmd {
	case "register":
		sess, err := client.Register(email, password, name)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Registered %s\n", sess.Email)
		repl(client)
	case "shell":
		if _, err := client.Login(email, password); err != nil {
			log.Fatal(err)
		}
		repl(client)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
