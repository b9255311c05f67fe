/*
Package types defines the data structures shared across foodboard.

# Catalog

FoodRecord is a catalog entry as the backend serves it:

	{
	  "id": "1",
	  "image": "https://example.com/cake.png",
	  "name": "Cake",
	  "price": 10,
	  "description": "Chocolate cake",
	  "available": true
	}

The id is assigned by the server. Some backends hand out numeric ids, so
decoding accepts both strings and numbers and always stores a string.

FoodInput is what the add and edit forms submit. On create every field is
required; on edit, zero fields keep the value of the record being edited.

# Validation

Only presence is checked. Errors wrap ErrInvalidInput and name the json
field, e.g. "invalid input: name is required, price is required".

# Activity

ActivityEntry records one completed load, create, update or delete for the
activity log.
*/
package types
