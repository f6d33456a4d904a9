package moodlews

import (
	"fmt"
)

func ExampleNew() {
	client, err := New("https://localhost", "00000000000000000000000000000000")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(client.MoodleURL())
	fmt.Println(client.APIURL())
	fmt.Println(client.DataFormat(), client.Timeout())
	// Output:
	// https://localhost/
	// https://localhost/webservice/rest/server.php
	// json 5s
}

func ExampleClient_Submit() {
	client, _ := New("https://localhost", "00000000000000000000000000000000")

	desc, _ := client.Submit("get", "CORE_Fn", map[string]any{"courseid": 5})
	fmt.Println(desc.Method, desc.Query.Get("wsfunction"), desc.Query.Get("courseid"))
	// Output:
	// GET core_fn 5
}
