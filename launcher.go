//go:build ignore

// launcher поднимает сервер places и собирает CLI-клиент рядом.
//
//	go run launcher.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

func main() {
	fmt.Println("Запуск places...")

	clientName := "places"
	if runtime.GOOS == "windows" {
		clientName = "places.exe"
	}
	// сервер на фоне
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	time.Sleep(3 * time.Second)
	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/places")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	fmt.Println("Сервер запущен на http://127.0.0.1:5000 (swagger: /swagger/index.html)")
	if runtime.GOOS == "windows" {
		fmt.Println("Этот терминал не закрывай. Открой новый и запускай: .\\places.exe --help")
	} else {
		fmt.Println("Этот терминал не закрывай. Открой новый и запускай: ./places --help")
	}

	server.Wait()
}
