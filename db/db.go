package db

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ProfilesCollection  *mongo.Collection
	RecipesCollection   *mongo.Collection
	ProjectsCollection  *mongo.Collection
	PairingsCollection  *mongo.Collection
	FoodCostsCollection *mongo.Collection
	PostsCollection     *mongo.Collection
	LikesCollection     *mongo.Collection
	SavesCollection     *mongo.Collection
	FollowsCollection   *mongo.Collection
	CommentsCollection  *mongo.Collection
	PricesCollection    *mongo.Collection
	ArticlesCollection  *mongo.Collection
	ChatsCollection     *mongo.Collection
	MessagesCollection  *mongo.Collection

	Client *mongo.Client
)

// Init wires up the collection globals. Called once from main after connect.
func Init(client *mongo.Client, dbName string) {
	Client = client
	d := client.Database(dbName)

	ArticlesCollection = d.Collection("articles")
	ChatsCollection = d.Collection("chats")
	CommentsCollection = d.Collection("social_comments")
	FollowsCollection = d.Collection("follows")
	FoodCostsCollection = d.Collection("food_costs")
	LikesCollection = d.Collection("social_likes")
	MessagesCollection = d.Collection("messages")
	PairingsCollection = d.Collection("pairings")
	PostsCollection = d.Collection("social_posts")
	PricesCollection = d.Collection("prices")
	ProfilesCollection = d.Collection("profiles")
	ProjectsCollection = d.Collection("projects")
	RecipesCollection = d.Collection("recipes")
	SavesCollection = d.Collection("social_saves")
	UserCollection = d.Collection("users")
}

func OptionsFindLatest(limit int64) *options.FindOptions {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	opts.SetLimit(limit)
	return opts
}
